package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"aiubportal-backend/lib/configutil"
	"aiubportal-backend/lib/scrapers/aiub"
	"aiubportal-backend/lib/serviceutil"
	"aiubportal-backend/services/portal"

	"github.com/spf13/cobra"
)

type Config struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Logs into the portal according to a config and saves the session.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		service := newService()
		outcome := authenticate(cmd.Context(), service, cfg.Username, cfg.Password)
		if outcome.Status != aiub.StatusAuthenticated {
			serviceutil.Fatal("login failed", fmt.Errorf("%s: %s", outcome.Status, outcome.Detail))
		}
		slog.Info("logged in", "username", cfg.Username)
	},
}

// authenticate drives the login state machine, prompting on stdin for
// as long as the portal keeps demanding captchas.
func authenticate(ctx context.Context, service portal.Service, username, password string) aiub.LoginOutcome {
	outcome := service.Authenticate(ctx, username, password)

	stdin := bufio.NewScanner(os.Stdin)
	for outcome.Status == aiub.StatusCaptchaRequired {
		fmt.Println("the portal wants a captcha solved, open the image below:")
		fmt.Println("  " + outcome.Captcha.ImageUrl)
		fmt.Print("captcha code: ")

		if !stdin.Scan() {
			return outcome
		}
		code := strings.TrimSpace(stdin.Text())
		outcome = service.SubmitCaptcha(ctx, username, password, code, outcome.Captcha.Id)
	}

	return outcome
}
