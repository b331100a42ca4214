//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"drive-upload-services/cmd"
	"drive-upload-services/infrastructure/config"

	"github.com/cucumber/godog"
)

type configContext struct {
	tempDir    string
	configPath string
	env        map[string]string
	cfg        *config.Config
	output     *bytes.Buffer
	err        error
}

var SharedConfigContext = &configContext{}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedConfigContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "config-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, "config.yaml")
		testCtx.env = map[string]string{}
		testCtx.cfg = nil
		testCtx.output = &bytes.Buffer{}
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^a configuration file containing:$`, testCtx.aConfigurationFileContaining)
	ctx.Step(`^the environment variable "([^"]*)" is "([^"]*)"$`, testCtx.theEnvironmentVariableIs)
	ctx.Step(`^I build the configuration$`, testCtx.iBuildTheConfiguration)
	ctx.Step(`^the setting "([^"]*)" should be "([^"]*)"$`, testCtx.theSettingShouldBe)
	ctx.Step(`^building the configuration should fail$`, testCtx.buildingTheConfigurationShouldFail)
	ctx.Step(`^I run config set "([^"]*)" to "([^"]*)"$`, testCtx.iRunConfigSet)
	ctx.Step(`^the config command should fail$`, testCtx.theConfigCommandShouldFail)
	ctx.Step(`^the config output should be "([^"]*)"$`, testCtx.theConfigOutputShouldBe)
}

func (c *configContext) aConfigurationFileContaining(doc *godog.DocString) error {
	return os.WriteFile(c.configPath, []byte(doc.Content), 0600)
}

func (c *configContext) theEnvironmentVariableIs(key, value string) error {
	c.env[key] = value
	return nil
}

func (c *configContext) iBuildTheConfiguration() error {
	c.cfg, c.err = config.Build(c.configPath, func(k string) string { return c.env[k] })
	return nil
}

func (c *configContext) theSettingShouldBe(key, expected string) error {
	if c.err != nil {
		return fmt.Errorf("unexpected error: %w", c.err)
	}
	if c.cfg == nil {
		var err error
		if c.cfg, err = config.Load(c.configPath); err != nil {
			return err
		}
	}
	got, err := config.NewConfigManager(c.cfg, c.configPath).Get(key)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected %s %q, got %q", key, expected, got)
	}
	return nil
}

func (c *configContext) buildingTheConfigurationShouldFail() error {
	if c.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	return nil
}

func (c *configContext) iRunConfigSet(key, value string) error {
	c.output.Reset()
	c.cfg = nil
	c.err = cmd.RunConfigSetWithDependencies(c.configPath, key, value, c.output)
	return nil
}

func (c *configContext) theConfigCommandShouldFail() error {
	if c.err == nil {
		return fmt.Errorf("expected the command to fail")
	}
	return nil
}

func (c *configContext) theConfigOutputShouldBe(expected string) error {
	if c.err != nil {
		return fmt.Errorf("unexpected error: %w", c.err)
	}
	if got := c.output.String(); got != expected+"\n" {
		return fmt.Errorf("expected output %q, got %q", expected, got)
	}
	return nil
}
