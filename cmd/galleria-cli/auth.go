package main

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and save its token",
	Long: `Create an account on the server. The returned token is saved in the
selected profile when one exists and printed otherwise.

Missing values are prompted for.

Examples:
  galleria-cli signup --username alice --email alice@example.com
  galleria-cli -p prod signup`,
	Args: cobra.NoArgs,
	RunE: runSignup,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with a username and password and save the token",
	Long: `Log in using HTTP Basic auth. The fresh token is saved in the selected
profile when one exists and printed otherwise.

Logging in invalidates every token issued earlier for the same user,
including tokens saved in other profiles.

Examples:
  galleria-cli login --username alice
  galleria-cli -q login --username alice --password s3cret`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var (
	authUsername string
	authEmail    string
	authPassword string
)

func init() {
	for _, c := range []*cobra.Command{signupCmd, loginCmd} {
		c.Flags().StringVarP(&authUsername, "username", "u", "", "username (prompted if empty)")
		c.Flags().StringVar(&authPassword, "password", "", "password (prompted if empty)")
	}
	signupCmd.Flags().StringVar(&authEmail, "email", "", "email (prompted if empty)")
}

func runSignup(cmd *cobra.Command, _ []string) error {
	username, err := promptIfEmpty(authUsername, "Username", false)
	if err != nil {
		return err
	}
	email, err := promptIfEmpty(authEmail, "Email", false)
	if err != nil {
		return err
	}
	password, err := promptIfEmpty(authPassword, "Password", true)
	if err != nil {
		return err
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	tok, err := client.Signup(cmd.Context(), username, email, password)
	if err != nil {
		return err
	}

	return saveToken(cmd, username, tok)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	username, err := promptIfEmpty(authUsername, "Username", false)
	if err != nil {
		return err
	}
	password, err := promptIfEmpty(authPassword, "Password", true)
	if err != nil {
		return err
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	tok, err := client.Login(cmd.Context(), username, password)
	if err != nil {
		return err
	}

	return saveToken(cmd, username, tok)
}

// saveToken stores tok in the selected profile, if any, and reports it.
func saveToken(cmd *cobra.Command, username, tok string) error {
	cf, p, err := loadProfile()
	if err != nil {
		return err
	}

	if p != nil {
		if err := cf.SetToken(p.Name, username, tok); err != nil {
			return err
		}
		if err := cf.Save(getConfigPath()); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		if !quiet && !jsonOutput {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Token saved to profile '%s'.\n", p.Name)
		}
	}

	return getFormatter().FormatToken(cmd.OutOrStdout(), username, tok)
}

func promptIfEmpty(value, label string, mask bool) (string, error) {
	if value != "" {
		return value, nil
	}

	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if input == "" {
				return errors.New(label + " is required")
			}
			return nil
		},
	}
	if mask {
		prompt.Mask = '*'
	}

	input, err := prompt.Run()
	if err != nil {
		if perr := handlePromptError(err); perr != nil {
			return "", perr
		}
		return "", &exitError{code: 1}
	}
	return input, nil
}
