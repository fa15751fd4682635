package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/taskboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have the documented defaults", func() {
			convey.So(cfg.ServerPort, convey.ShouldEqual, 5000)
			convey.So(cfg.ManagerHost, convey.ShouldEqual, "localhost")
			convey.So(cfg.ManagerPort, convey.ShouldEqual, 8080)
			convey.So(cfg.Addr(), convey.ShouldEqual, ":5000")
			convey.So(cfg.ManagerBaseURL(), convey.ShouldEqual, "http://localhost:8080")
			convey.So(cfg.ManagerTimeout(), convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_ManagerBaseURL(t *testing.T) {
	convey.Convey("Given a config", t, func() {
		cfg := config.New()

		convey.Convey("When the host is an IPv6 literal", func() {
			cfg.ManagerHost = "::1"
			convey.So(cfg.ManagerBaseURL(), convey.ShouldEqual, "http://[::1]:8080")
		})

		convey.Convey("When an explicit API URL is set", func() {
			cfg.ManagerAPIURL = "https://tasks.example.com/v1/"
			convey.So(cfg.ManagerBaseURL(), convey.ShouldEqual, "https://tasks.example.com/v1")
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given an otherwise valid config", t, func() {
		cfg := config.New()

		cases := []struct {
			name   string
			mutate func(*config.Config)
			want   string
		}{
			{"zero server port", func(c *config.Config) { c.ServerPort = 0 }, "server_port"},
			{"server port too large", func(c *config.Config) { c.ServerPort = 70000 }, "server_port"},
			{"empty manager host", func(c *config.Config) { c.ManagerHost = " " }, "manager_host"},
			{"negative manager port", func(c *config.Config) { c.ManagerPort = -1 }, "manager_port"},
			{"relative api url", func(c *config.Config) { c.ManagerAPIURL = "tasks.local" }, "manager_api_url"},
			{"ftp api url", func(c *config.Config) { c.ManagerAPIURL = "ftp://tasks.local" }, "manager_api_url"},
			{"empty tasks path", func(c *config.Config) { c.ManagerTasksPath = "/" }, "manager_tasks_path"},
			{"empty health path", func(c *config.Config) { c.ManagerHealthPath = "" }, "manager_health_path"},
			{"zero timeout", func(c *config.Config) { c.ManagerTimeoutMS = 0 }, "manager_timeout_ms"},
			{"unknown log level", func(c *config.Config) { c.LogLevel = "loud" }, "log_level"},
			{"unknown log format", func(c *config.Config) { c.LogFormat = "xml" }, "log_format"},
		}

		for _, tc := range cases {
			convey.Convey("When "+tc.name, func() {
				tc.mutate(cfg)
				err := cfg.Validate()

				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, tc.want)
			})
		}

		convey.Convey("When an API URL is set the host is not required", func() {
			cfg.ManagerHost = ""
			cfg.ManagerAPIURL = "http://tasks:9000"
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
