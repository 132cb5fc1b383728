package config

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/pflag"
	"github.com/vocdoni/zk-multisig/circuits/multisig"
)

func TestDefault(t *testing.T) {
	c := qt.New(t)
	conf := Default()
	c.Assert(conf.Validate(), qt.IsNil)
	c.Assert(conf.Shape(), qt.Equals, multisig.DefaultShape())
}

func TestBindFlags(t *testing.T) {
	c := qt.New(t)
	conf := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	conf.BindFlags(fs)
	c.Assert(fs.Parse([]string{"--port", "9090", "--maxSigners", "8", "--logLevel", "debug"}), qt.IsNil)
	c.Assert(conf.APIPort, qt.Equals, 9090)
	c.Assert(conf.Shape().MaxSigners, qt.Equals, 8)
	c.Assert(conf.Validate(), qt.IsNil)

	conf.LogLevel = "verbose"
	c.Assert(conf.Validate(), qt.ErrorMatches, `invalid log level "verbose"`)
	conf.LogLevel = "info"
	conf.MaxOperations = 0
	c.Assert(conf.Validate(), qt.IsNotNil)
}
