package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoizo-api/pkg/config"
	"github.com/jhoicas/invoizo-api/pkg/encryption"
	"github.com/jhoicas/invoizo-api/pkg/jwt"
)

var genKeyCmd = &cobra.Command{
	Use:   "gen-key",
	Short: "Print a new base64 AES-256 key for ENCRYPTION_KEY",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := encryption.GenerateKey()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	},
}

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token <user-id>",
	Short: "Issue a development JWT for a user id",
	Long: `Signs an HS256 token with JWT_SECRET. In production tokens come from the
identity provider; this is meant for local testing of the API.`,
	Example: `  invoizoctl issue-token 6f1c... --minutes 120`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		minutes, _ := cmd.Flags().GetInt("minutes")
		if minutes <= 0 {
			minutes = cfg.JWT.Expiration
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, args[0], cfg.JWT.Issuer, minutes)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genKeyCmd, issueTokenCmd)
	issueTokenCmd.Flags().Int("minutes", 0, "Token lifetime in minutes (default: JWT_EXPIRATION_MINUTES)")
}
