package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sagarc03/galleria"
	"github.com/sagarc03/galleria/config"
	"github.com/sagarc03/galleria/keybackend"
)

var useraddCmd = &cobra.Command{
	Use:   "useradd [flags] <username> <email>",
	Short: "Create a user and print a bearer token",
	Long: `Create a user directly in the database, bypassing the HTTP API.

The password is taken from --password or, when that is empty, from the
first line of stdin. On success the signed bearer token is printed.

Examples:
  galleria useradd alice alice@example.com --password 's3cret'
  echo 's3cret' | galleria useradd alice alice@example.com`,
	Args: cobra.ExactArgs(2),
	RunE: runUseradd,
}

var useraddPassword string

func init() {
	useraddCmd.Flags().StringVarP(&useraddPassword, "password", "p", "", "password for the new user (default: read from stdin)")
	useraddCmd.Flags().String("secret-file", "", "file holding the token signing secret")
	rootCmd.AddCommand(useraddCmd)
}

func runUseradd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	password := useraddPassword
	if password == "" {
		password, err = readPassword(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	secret, err := keybackend.LoadSigningSecret(cfg.Auth.Secret)
	if err != nil {
		return fmt.Errorf("load signing secret: %w", err)
	}

	svc, err := openServices(ctx, cfg, false, secret)
	if err != nil {
		return err
	}
	defer svc.Close()

	token, err := svc.credentials.Signup(ctx, galleria.SignupRequest{
		Username: args[0],
		Email:    args[1],
		Password: password,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

// readPassword returns the first line of r without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password is required")
	}
	return password, nil
}
