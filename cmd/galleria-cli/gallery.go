package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/sagarc03/galleria/clientcli"
)

var galleryCmd = &cobra.Command{
	Use:     "gallery",
	Aliases: []string{"galleries", "g"},
	Short:   "Manage your galleries",
}

var galleryCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a gallery",
	Long: `Create a gallery.

Examples:
  galleria-cli gallery create holiday
  galleria-cli gallery create holiday --desc "summer 2026"
  id=$(galleria-cli -q gallery create holiday)`,
	Args: cobra.ExactArgs(1),
	RunE: runGalleryCreate,
}

var galleryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your galleries",
	Long: `List your galleries, newest first.

Examples:
  galleria-cli gallery list
  galleria-cli gallery list --page 2 --pagesize 50
  galleria-cli gallery list --all --json`,
	Args: cobra.NoArgs,
	RunE: runGalleryList,
}

var galleryGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a gallery",
	Args:  cobra.ExactArgs(1),
	RunE:  runGalleryGet,
}

var galleryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename a gallery or change its description",
	Long: `Update a gallery. Only the flags you pass are changed.

Examples:
  galleria-cli gallery update <id> --name trips
  galleria-cli gallery update <id> --desc ""`,
	Args: cobra.ExactArgs(1),
	RunE: runGalleryUpdate,
}

var galleryDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a gallery with all its pictures",
	Args:    cobra.ExactArgs(1),
	RunE:    runGalleryDelete,
}

var (
	galleryDesc  string
	galleryName  string
	listPage     int
	listPageSize int
	listAll      bool
)

func init() {
	galleryCmd.AddCommand(galleryCreateCmd)
	galleryCmd.AddCommand(galleryListCmd)
	galleryCmd.AddCommand(galleryGetCmd)
	galleryCmd.AddCommand(galleryUpdateCmd)
	galleryCmd.AddCommand(galleryDeleteCmd)

	galleryCreateCmd.Flags().StringVarP(&galleryDesc, "desc", "d", "", "gallery description")
	galleryUpdateCmd.Flags().StringVarP(&galleryName, "name", "n", "", "new gallery name")
	galleryUpdateCmd.Flags().StringVarP(&galleryDesc, "desc", "d", "", "new gallery description")

	addListFlags(galleryListCmd)
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&listPage, "page", 1, "page number")
	cmd.Flags().IntVar(&listPageSize, "pagesize", 0, "items per page (server default: 20, max: 100)")
	cmd.Flags().BoolVar(&listAll, "all", false, "fetch all pages")
}

func listOptions() clientcli.ListOptions {
	return clientcli.ListOptions{Page: listPage, PageSize: listPageSize, All: listAll}
}

func runGalleryCreate(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	g, err := client.CreateGallery(cmd.Context(), args[0], galleryDesc)
	if err != nil {
		return err
	}
	return getFormatter().FormatGallery(cmd.OutOrStdout(), g)
}

func runGalleryList(cmd *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	list, err := client.ListGalleries(cmd.Context(), listOptions())
	if err != nil {
		return err
	}
	return getFormatter().FormatGalleryList(cmd.OutOrStdout(), list)
}

func runGalleryGet(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	g, err := client.GetGallery(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return getFormatter().FormatGallery(cmd.OutOrStdout(), g)
}

func runGalleryUpdate(cmd *cobra.Command, args []string) error {
	var update clientcli.GalleryUpdate
	if cmd.Flags().Changed("name") {
		update.Name = &galleryName
	}
	if cmd.Flags().Changed("desc") {
		update.Description = &galleryDesc
	}
	if update.Name == nil && update.Description == nil {
		return errors.New("nothing to update, pass --name or --desc")
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	g, err := client.UpdateGallery(cmd.Context(), args[0], update)
	if err != nil {
		return err
	}
	return getFormatter().FormatGallery(cmd.OutOrStdout(), g)
}

func runGalleryDelete(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	err = client.DeleteGallery(cmd.Context(), args[0])
	results := []clientcli.DeleteResult{{ID: args[0], Deleted: err == nil, Err: err}}

	if ferr := getFormatter().FormatDelete(cmd.OutOrStdout(), results); ferr != nil {
		return ferr
	}
	if err != nil {
		return &exitError{code: 1}
	}
	return nil
}
