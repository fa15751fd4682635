package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/taskboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then the documented defaults apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.ServerPort, convey.ShouldEqual, 5000)
				convey.So(cfg.ManagerHost, convey.ShouldEqual, "localhost")
				convey.So(cfg.ManagerPort, convey.ShouldEqual, 8080)
				convey.So(cfg.ManagerTasksPath, convey.ShouldEqual, "api/tasks")
				convey.So(cfg.ManagerTimeoutMS, convey.ShouldEqual, 5000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SERVER_PORT", "5050")
			_ = os.Setenv("MANAGER_HOST", "task-manager")
			_ = os.Setenv("MANAGER_PORT", "9090")
			_ = os.Setenv("MANAGER_TIMEOUT_MS", "1500")
			_ = os.Setenv("LOG_LEVEL", "debug")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ServerPort, convey.ShouldEqual, 5050)
				convey.So(cfg.ManagerHost, convey.ShouldEqual, "task-manager")
				convey.So(cfg.ManagerPort, convey.ShouldEqual, 9090)
				convey.So(cfg.ManagerTimeoutMS, convey.ShouldEqual, 1500)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.ManagerBaseURL(), convey.ShouldEqual, "http://task-manager:9090")
			})
		})

		convey.Convey("When an environment variable is set but empty", func() {
			_ = os.Setenv("MANAGER_HOST", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it is treated as unset", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ManagerHost, convey.ShouldEqual, "localhost")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempFile("taskboard-*.yaml", `
server_port: 6000
manager_host: yaml-host
manager_timeout_ms: 2500
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv(config.EnvConfigFile, tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML and keep defaults for the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ServerPort, convey.ShouldEqual, 6000)
				convey.So(cfg.ManagerHost, convey.ShouldEqual, "yaml-host")
				convey.So(cfg.ManagerTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.ManagerPort, convey.ShouldEqual, 8080)
			})
		})

		convey.Convey("When YAML, dotenv and environment all set values", func() {
			yamlFile := createTempFile("taskboard-*.yaml", `
server_port: 6000
manager_host: yaml-host
manager_port: 7000
`)
			dotenvFile := createTempFile("taskboard-*.env", "MANAGER_HOST=dotenv-host\nMANAGER_PORT=7100\nUNRELATED=1\n")
			defer func() {
				_ = os.Remove(yamlFile)
				_ = os.Remove(dotenvFile)
			}()
			_ = os.Setenv(config.EnvConfigFile, yamlFile)
			_ = os.Setenv(config.EnvDotenvFile, dotenvFile)
			_ = os.Setenv("MANAGER_PORT", "7200")

			cfg, err := config.Load(ctx)

			convey.Convey("Then later layers win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ServerPort, convey.ShouldEqual, 6000)           // yaml
				convey.So(cfg.ManagerHost, convey.ShouldEqual, "dotenv-host") // dotenv
				convey.So(cfg.ManagerPort, convey.ShouldEqual, 7200)          // env
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempFile("taskboard-*.yaml", `invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv(config.EnvConfigFile, tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the YAML file does not exist", func() {
			_ = os.Setenv(config.EnvConfigFile, "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When an explicit dotenv file does not exist", func() {
			_ = os.Setenv(config.EnvDotenvFile, "/non/existent/.env")

			cfg, err := config.Load(ctx)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When a port is not numeric", func() {
			_ = os.Setenv("SERVER_PORT", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fail fast", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a port is out of range", func() {
			_ = os.Setenv("MANAGER_PORT", "0")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "manager_port")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When MANAGER_API_URL is set", func() {
			_ = os.Setenv("MANAGER_API_URL", "http://tasks.internal:9999/")

			cfg, err := config.Load(ctx)

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.ManagerBaseURL(), convey.ShouldEqual, "http://tasks.internal:9999")
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		config.EnvConfigFile,
		config.EnvDotenvFile,
		"SERVER_PORT",
		"MANAGER_HOST",
		"MANAGER_PORT",
		"MANAGER_API_URL",
		"MANAGER_TASKS_PATH",
		"MANAGER_HEALTH_PATH",
		"MANAGER_TIMEOUT_MS",
		"LOG_LEVEL",
		"LOG_FORMAT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempFile(pattern, content string) string {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
