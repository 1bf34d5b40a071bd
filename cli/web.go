// ABOUTME: Web server subcommand
// ABOUTME: Serves the HTTP JSON API on the configured address
package cli

import (
	"flag"

	"github.com/harperreed/fundops/logger"
	"github.com/harperreed/fundops/pipeline"
	"github.com/harperreed/fundops/web"
)

// WebCommand serves the JSON API until the listener fails. --addr overrides defaultAddr.
func WebCommand(svc *pipeline.Service, log *logger.Logger, defaultAddr string, args []string) error {
	fs := flag.NewFlagSet("web", flag.ExitOnError)
	addr := fs.String("addr", defaultAddr, "Listen address")

	if err := fs.Parse(args); err != nil {
		return err
	}

	return web.NewServer(svc, log).Run(*addr)
}
