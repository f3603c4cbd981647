package commands

import (
	"context"
	"fmt"
	"os"

	"aiubportal-backend/lib/restyutil"
	"aiubportal-backend/lib/scrapers/aiub"
	"aiubportal-backend/lib/serviceutil"
	"aiubportal-backend/lib/sqliteutil"
	"aiubportal-backend/services/keychain"
	"aiubportal-backend/services/keychain/db"
	"aiubportal-backend/services/portal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portal-cli",
	Short: "portal-cli logs into the AIUB student portal and scrapes the current academic state.",
}

var verbose *bool
var keychainDb *string
var baseUrl *string

func init() {
	verbose = rootCmd.PersistentFlags().Bool("verbose", false, "Write resty transcripts to .dev/resty.")
	keychainDb = rootCmd.PersistentFlags().String("db", "keychain.db", "The database holding credentials and sessions.")
	baseUrl = rootCmd.PersistentFlags().String("portal", aiub.DefaultBaseUrl, "The portal origin to scrape.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService() portal.Service {
	if *verbose {
		aiub.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/portal"))
	}

	client, err := aiub.NewClient(aiub.ClientOptions{BaseUrl: *baseUrl})
	if err != nil {
		serviceutil.Fatal("failed to initialize portal client", err)
	}

	sqlite, err := sqliteutil.OpenDB(db.Schema, *keychainDb)
	if err != nil {
		serviceutil.Fatal("failed to open keychain db", err)
	}

	return portal.NewService(client, keychain.NewService(sqlite))
}
