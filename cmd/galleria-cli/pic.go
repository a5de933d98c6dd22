package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/sagarc03/galleria/clientcli"
)

var picCmd = &cobra.Command{
	Use:     "pic",
	Aliases: []string{"pics", "picture"},
	Short:   "Manage pictures in a gallery",
}

var picUploadCmd = &cobra.Command{
	Use:   "upload <gallery-id> <file> [file...]",
	Short: "Upload images to a gallery",
	Long: `Upload one or more images to a gallery.

Each picture is named after its file unless --name is given, which is
only allowed with a single file.

Examples:
  galleria-cli pic upload <gallery-id> beach.jpg
  galleria-cli pic upload <gallery-id> sunset.png --name "Sunset" --desc "day one"
  galleria-cli pic upload <gallery-id> ./photos/*.jpg`,
	Args: cobra.MinimumNArgs(2),
	RunE: runPicUpload,
}

var picListCmd = &cobra.Command{
	Use:     "list <gallery-id>",
	Aliases: []string{"ls"},
	Short:   "List pictures in a gallery",
	Args:    cobra.ExactArgs(1),
	RunE:    runPicList,
}

var picDeleteCmd = &cobra.Command{
	Use:     "delete <gallery-id> <picture-id> [picture-id...]",
	Aliases: []string{"rm"},
	Short:   "Delete pictures from a gallery",
	Args:    cobra.MinimumNArgs(2),
	RunE:    runPicDelete,
}

var (
	picName        string
	picDesc        string
	picContentType string
)

func init() {
	picCmd.AddCommand(picUploadCmd)
	picCmd.AddCommand(picListCmd)
	picCmd.AddCommand(picDeleteCmd)

	picUploadCmd.Flags().StringVarP(&picName, "name", "n", "", "picture name (single file only, default: file name)")
	picUploadCmd.Flags().StringVarP(&picDesc, "desc", "d", "", "picture description")
	picUploadCmd.Flags().StringVar(&picContentType, "content-type", "", "override content type (single file only)")

	addListFlags(picListCmd)
}

func runPicUpload(cmd *cobra.Command, args []string) error {
	galleryID, files := args[0], args[1:]

	client, err := getClient()
	if err != nil {
		return err
	}

	var results []clientcli.UploadResult
	if len(files) == 1 {
		pic, uploadErr := client.UploadPicture(cmd.Context(), galleryID, clientcli.UploadOptions{
			LocalPath:   files[0],
			Name:        picName,
			Description: picDesc,
			ContentType: picContentType,
		})
		results = []clientcli.UploadResult{{LocalPath: files[0], Picture: pic, Err: uploadErr}}
	} else {
		if picName != "" || picContentType != "" {
			return errors.New("--name and --content-type need a single file")
		}
		results, err = client.UploadPictures(cmd.Context(), galleryID, files, picDesc)
		if err != nil {
			return err
		}
	}

	if err := getFormatter().FormatUpload(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	for i := range results {
		if results[i].Err != nil {
			return &exitError{code: 1}
		}
	}
	return nil
}

func runPicList(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	list, err := client.ListPictures(cmd.Context(), args[0], listOptions())
	if err != nil {
		return err
	}
	return getFormatter().FormatPictureList(cmd.OutOrStdout(), list)
}

func runPicDelete(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	results, err := client.DeletePictures(cmd.Context(), args[0], args[1:])
	if err != nil {
		return err
	}

	if err := getFormatter().FormatDelete(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	if clientcli.HasDeleteErrors(results) {
		return &exitError{code: 1}
	}
	return nil
}
