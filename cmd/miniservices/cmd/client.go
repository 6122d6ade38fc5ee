package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const defaultBase = "http://localhost:5000"

var (
	clientBase string
	clientBody string
)

// apiClient sends one request and prints the status line and body.
type apiClient struct {
	base string
	http *http.Client
	out  io.Writer
}

func newAPIClient(base string, out io.Writer) *apiClient {
	return &apiClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
		out:  out,
	}
}

func (c *apiClient) do(ctx context.Context, method, path string, body io.Reader) error {
	url := c.base + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	fmt.Fprintf(c.out, "→ %s %s\n", method, url)
	fmt.Fprintf(c.out, "← %d %s\n\n", res.StatusCode, http.StatusText(res.StatusCode))
	if _, err := io.Copy(c.out, res.Body); err != nil {
		return err
	}
	fmt.Fprintln(c.out)
	return nil
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Send requests to a running service",
	Long: `Send requests to a running items, users or compute service.

The base URL comes from --base or API_BASE (default ` + defaultBase + `).`,
}

func resourceArg(args []string) (string, error) {
	switch args[0] {
	case "items", "users":
		return "/" + args[0], nil
	default:
		return "", fmt.Errorf("unknown resource %q: expected items or users", args[0])
	}
}

func clientFor(cmd *cobra.Command) *apiClient {
	base := clientBase
	if base == "" {
		base = os.Getenv("API_BASE")
	}
	if base == "" {
		base = defaultBase
	}
	return newAPIClient(base, cmd.OutOrStdout())
}

func requestBody(cmd *cobra.Command) io.Reader {
	if clientBody != "" {
		return bytes.NewBufferString(clientBody)
	}
	return cmd.InOrStdin()
}

func init() {
	clientCmd.PersistentFlags().StringVar(&clientBase, "base", "", "service base URL (env API_BASE)")

	list := &cobra.Command{
		Use:   "list <items|users>",
		Short: "GET /<resource>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resourceArg(args)
			if err != nil {
				return err
			}
			return clientFor(cmd).do(cmd.Context(), http.MethodGet, path, nil)
		},
	}

	get := &cobra.Command{
		Use:   "get <items|users> <id>",
		Short: "GET /<resource>/<id>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resourceArg(args)
			if err != nil {
				return err
			}
			return clientFor(cmd).do(cmd.Context(), http.MethodGet, path+"/"+args[1], nil)
		},
	}

	create := &cobra.Command{
		Use:   "create <items|users> -d '{...}'",
		Short: "POST /<resource> with a JSON body (flag or stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resourceArg(args)
			if err != nil {
				return err
			}
			return clientFor(cmd).do(cmd.Context(), http.MethodPost, path, requestBody(cmd))
		},
	}

	update := &cobra.Command{
		Use:   "update <items|users> <id> -d '{...}'",
		Short: "PUT /<resource>/<id> with a JSON body (flag or stdin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resourceArg(args)
			if err != nil {
				return err
			}
			return clientFor(cmd).do(cmd.Context(), http.MethodPut, path+"/"+args[1], requestBody(cmd))
		},
	}

	del := &cobra.Command{
		Use:   "delete <items|users> <id>",
		Short: "DELETE /<resource>/<id>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resourceArg(args)
			if err != nil {
				return err
			}
			return clientFor(cmd).do(cmd.Context(), http.MethodDelete, path+"/"+args[1], nil)
		},
	}

	compute := &cobra.Command{
		Use:   "compute",
		Short: "GET /compute",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return clientFor(cmd).do(cmd.Context(), http.MethodGet, "/compute", nil)
		},
	}

	for _, c := range []*cobra.Command{create, update} {
		c.Flags().StringVarP(&clientBody, "data", "d", "", "request JSON body")
	}

	clientCmd.AddCommand(list, get, create, update, del, compute)
}
