package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const timeLayout = "2006-01-02 15:04:05"

// Formatter formats results for output.
type Formatter interface {
	FormatToken(w io.Writer, username, token string) error
	FormatGallery(w io.Writer, gallery *Gallery) error
	FormatGalleryList(w io.Writer, list *GalleryList) error
	FormatUpload(w io.Writer, results []UploadResult) error
	FormatPictureList(w io.Writer, list *PictureList) error
	FormatDelete(w io.Writer, results []DeleteResult) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
// With Quiet set only ids and tokens are printed, one per line.
type HumanFormatter struct {
	Quiet bool
}

func (f *HumanFormatter) FormatToken(w io.Writer, username, token string) error {
	if f.Quiet {
		_, _ = fmt.Fprintln(w, token)
		return nil
	}
	if username != "" {
		_, _ = fmt.Fprintf(w, "Logged in as %s\n", username)
	}
	_, _ = fmt.Fprintf(w, "Token: %s\n", token)
	return nil
}

func (f *HumanFormatter) FormatGallery(w io.Writer, g *Gallery) error {
	if f.Quiet {
		_, _ = fmt.Fprintln(w, g.ID)
		return nil
	}
	_, _ = fmt.Fprintf(w, "ID:          %s\n", g.ID)
	_, _ = fmt.Fprintf(w, "Name:        %s\n", g.Name)
	if g.Description != "" {
		_, _ = fmt.Fprintf(w, "Description: %s\n", g.Description)
	}
	_, _ = fmt.Fprintf(w, "Created:     %s\n", g.CreatedAt.Format(timeLayout))
	_, _ = fmt.Fprintf(w, "Updated:     %s\n", g.UpdatedAt.Format(timeLayout))
	return nil
}

func (f *HumanFormatter) FormatGalleryList(w io.Writer, list *GalleryList) error {
	if f.Quiet {
		for i := range list.Items {
			_, _ = fmt.Fprintln(w, list.Items[i].ID)
		}
		return nil
	}

	if len(list.Items) == 0 {
		_, _ = fmt.Fprintln(w, "No galleries found")
		return nil
	}

	nameLen := 4 // "NAME"
	for i := range list.Items {
		nameLen = max(nameLen, len(list.Items[i].Name))
	}
	nameLen = min(nameLen, 40)

	_, _ = fmt.Fprintf(w, "%-36s  %-*s  %s\n", "ID", nameLen, "NAME", "UPDATED")
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n", strings.Repeat("-", 36), strings.Repeat("-", nameLen), strings.Repeat("-", 19))

	for i := range list.Items {
		g := &list.Items[i]
		_, _ = fmt.Fprintf(w, "%-36s  %-*s  %s\n", g.ID, nameLen, truncate(g.Name, nameLen), g.UpdatedAt.Format(timeLayout))
	}

	printPageSummary(w, "gallery(s)", list.Page, list.PageSize, len(list.Items), list.Total)
	return nil
}

func (f *HumanFormatter) FormatUpload(w io.Writer, results []UploadResult) error {
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "Error: %s - %v\n", r.LocalPath, r.Err)
			continue
		}
		if f.Quiet {
			_, _ = fmt.Fprintln(w, r.Picture.ID)
			continue
		}
		_, _ = fmt.Fprintf(w, "Uploaded: %s (%s)\n", r.LocalPath, formatSize(r.Picture.Size))
		_, _ = fmt.Fprintf(w, "  ID:  %s\n", r.Picture.ID)
		_, _ = fmt.Fprintf(w, "  URI: %s\n", r.Picture.ImageURI)
	}
	return nil
}

func (f *HumanFormatter) FormatPictureList(w io.Writer, list *PictureList) error {
	if f.Quiet {
		for i := range list.Items {
			_, _ = fmt.Fprintln(w, list.Items[i].ID)
		}
		return nil
	}

	if len(list.Items) == 0 {
		_, _ = fmt.Fprintln(w, "No pictures found")
		return nil
	}

	nameLen := 4 // "NAME"
	for i := range list.Items {
		nameLen = max(nameLen, len(list.Items[i].Name))
	}
	nameLen = min(nameLen, 40)

	_, _ = fmt.Fprintf(w, "%-36s  %-*s  %10s  %s\n", "ID", nameLen, "NAME", "SIZE", "URI")
	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s\n", strings.Repeat("-", 36), strings.Repeat("-", nameLen), strings.Repeat("-", 10), strings.Repeat("-", 20))

	var total int64
	for i := range list.Items {
		p := &list.Items[i]
		total += p.Size
		_, _ = fmt.Fprintf(w, "%-36s  %-*s  %10s  %s\n", p.ID, nameLen, truncate(p.Name, nameLen), formatSize(p.Size), p.ImageURI)
	}

	printPageSummary(w, fmt.Sprintf("picture(s), %s", formatSize(total)), list.Page, list.PageSize, len(list.Items), list.Total)
	return nil
}

func (f *HumanFormatter) FormatDelete(w io.Writer, results []DeleteResult) error {
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "Error: %s - %v\n", r.ID, r.Err)
			continue
		}
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "Deleted: %s\n", r.ID)
		}
	}
	return nil
}

func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// FormatProfileList formats a list of profiles as human-readable text.
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	maxNameLen := 4     // "NAME"
	maxEndpointLen := 8 // "ENDPOINT"
	for i := range profiles {
		maxNameLen = max(maxNameLen, len(profiles[i].Name))
		maxEndpointLen = max(maxEndpointLen, len(profiles[i].Endpoint))
	}
	maxNameLen = min(maxNameLen, 20)
	maxEndpointLen = min(maxEndpointLen, 50)

	_, _ = fmt.Fprintf(w, "  %-*s  %-*s  %-16s  %s\n", maxNameLen, "NAME", maxEndpointLen, "ENDPOINT", "USERNAME", "TOKEN")
	_, _ = fmt.Fprintf(w, "  %s  %s  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", maxEndpointLen), strings.Repeat("-", 16), strings.Repeat("-", 20))

	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}

		_, _ = fmt.Fprintf(w, "%s %-*s  %-*s  %-16s  %s\n",
			marker,
			maxNameLen, truncate(p.Name, maxNameLen),
			maxEndpointLen, truncate(p.Endpoint, maxEndpointLen),
			truncate(orDash(p.Username), 16),
			maskSecret(p.Token, showSecrets),
		)
	}

	return nil
}

// FormatProfileShow formats a single profile as human-readable text.
func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	_, _ = fmt.Fprintf(w, "Name:     %s", profile.Name)
	if isDefault {
		_, _ = fmt.Fprintf(w, " (default)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Endpoint: %s\n", profile.Endpoint)
	_, _ = fmt.Fprintf(w, "Username: %s\n", orDash(profile.Username))
	_, _ = fmt.Fprintf(w, "Token:    %s\n", maskSecret(profile.Token, showSecrets))
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatToken(w io.Writer, username, token string) error {
	output := struct {
		Username string `json:"username,omitempty"`
		Token    string `json:"token"`
	}{
		Username: username,
		Token:    token,
	}
	return writeJSON(w, output)
}

func (f *JSONFormatter) FormatGallery(w io.Writer, g *Gallery) error {
	return writeJSON(w, g)
}

func (f *JSONFormatter) FormatGalleryList(w io.Writer, list *GalleryList) error {
	return writeJSON(w, list)
}

func (f *JSONFormatter) FormatUpload(w io.Writer, results []UploadResult) error {
	type jsonResult struct {
		LocalPath string   `json:"local_path"`
		Picture   *Picture `json:"picture,omitempty"`
		Error     string   `json:"error,omitempty"`
	}

	output := make([]jsonResult, len(results))
	for i := range results {
		r := &results[i]
		jr := jsonResult{LocalPath: r.LocalPath, Picture: r.Picture}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		output[i] = jr
	}

	return writeJSON(w, output)
}

func (f *JSONFormatter) FormatPictureList(w io.Writer, list *PictureList) error {
	return writeJSON(w, list)
}

func (f *JSONFormatter) FormatDelete(w io.Writer, results []DeleteResult) error {
	type jsonResult struct {
		ID      string `json:"id"`
		Deleted bool   `json:"deleted"`
		Error   string `json:"error,omitempty"`
	}

	output := struct {
		Results []jsonResult `json:"results"`
	}{
		Results: make([]jsonResult, len(results)),
	}

	for i, r := range results {
		jr := jsonResult{ID: r.ID, Deleted: r.Deleted}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		output.Results[i] = jr
	}

	return writeJSON(w, output)
}

func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	type jsonProfile struct {
		Name     string `json:"name"`
		Endpoint string `json:"endpoint"`
		Username string `json:"username,omitempty"`
		Token    string `json:"token,omitempty"`
		Default  bool   `json:"default,omitempty"`
	}

	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{
		Profiles: make([]jsonProfile, len(profiles)),
	}

	for i := range profiles {
		p := &profiles[i]
		output.Profiles[i] = jsonProfile{
			Name:     p.Name,
			Endpoint: p.Endpoint,
			Username: p.Username,
			Token:    maskSecret(p.Token, showSecrets),
			Default:  p.Name == defaultName,
		}
	}

	return writeJSON(w, output)
}

func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	output := struct {
		Name     string `json:"name"`
		Endpoint string `json:"endpoint"`
		Username string `json:"username"`
		Token    string `json:"token"`
		Default  bool   `json:"default"`
	}{
		Name:     profile.Name,
		Endpoint: profile.Endpoint,
		Username: profile.Username,
		Token:    maskSecret(profile.Token, showSecrets),
		Default:  isDefault,
	}

	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPageSummary(w io.Writer, noun string, page, pageSize, shown, total int) {
	_, _ = fmt.Fprintf(w, "\n%d of %d %s\n", shown, total, noun)
	if page*pageSize < total {
		_, _ = fmt.Fprintf(w, "Next page: use --page %d\n", page+1)
	}
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// maskSecret masks a secret string, showing only first 4 and last 4 characters.
// If showSecrets is true, returns the original value.
// If the secret is too short, returns all asterisks.
func maskSecret(secret string, showSecrets bool) string {
	if showSecrets {
		return secret
	}
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
