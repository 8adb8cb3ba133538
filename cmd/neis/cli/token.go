package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/neisdata/neis/internal/config"
	"github.com/neisdata/neis/internal/service"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage operator tokens",
		Long:  "Mint the JWTs that authenticate against the admin endpoints (dataset reload).",
	}

	cmd.AddCommand(newTokenCreateCmd())

	return cmd
}

func newTokenCreateCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new operator token",
		Long: `Mint a signed operator token using the configured admin secret. The secret
comes from auth.admin_secret in the config file or NEIS_AUTH_ADMIN_SECRET;
when neither is set, you are prompted for it without echo.`,
		Example: `  neis token create --subject ops@example.com
  neis token create --ttl 1h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenCreate(subject, ttl)
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "operator", "Subject recorded in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	return cmd
}

func runTokenCreate(subject string, ttl time.Duration) error {
	secret := viper.GetString("auth.admin_secret")
	if secret == "" {
		cfg, err := config.Load(viper.ConfigFileUsed())
		if err == nil {
			secret = cfg.Auth.AdminSecret
		}
	}
	if secret == "" {
		fmt.Print("Admin secret: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read secret: %w", err)
		}
		fmt.Println()
		secret = string(raw)
	}
	if secret == "" {
		return fmt.Errorf("admin secret is required")
	}

	token, err := service.NewOperatorAuth(secret).Issue(subject, ttl)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "valid for %s; pass as: Authorization: Bearer <token>\n", ttl)
	return nil
}
