package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/atulsharma648-byte/ASMan/internal/api"
	"github.com/atulsharma648-byte/ASMan/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lesson API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		if port, _ := cmd.Flags().GetString("port"); port != "" {
			d.cfg.Port = port
		}
		if d.cfg.LogMode == "prod" || d.cfg.LogMode == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		sessions := session.New(nil)
		if demo, _ := cmd.Flags().GetBool("demo"); demo {
			sessions = session.NewWithDemo(nil)
		}

		srv := api.New(api.Options{
			Lessons:     d.service,
			Sessions:    sessions,
			Events:      d.store.EventRepo(),
			Model:       d.model,
			CORSOrigins: d.cfg.CORSOrigins,
			Logger:      d.log,
		})
		return srv.Run(d.cfg.Addr())
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Listen port or host:port (overrides ASMAN_PORT)")
	serveCmd.Flags().Bool("demo", true, "Seed the session history with demo entries")
}
