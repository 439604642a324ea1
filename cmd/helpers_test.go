package cmd

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/nbshare/cli/pkg/nbformat"
	"github.com/nbshare/cli/pkg/sharing"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
)

var outBuf *bytes.Buffer

// setupStdoutCapture redirects pterm output into outBuf for the duration
// of the test.
func setupStdoutCapture(t *testing.T) {
	t.Helper()
	outBuf = &bytes.Buffer{}
	pterm.SetDefaultOutput(outBuf)
	// The package-level prefix printers copy the default writer at init
	// time, so SetDefaultOutput alone does not redirect them.
	printers := []*pterm.PrefixPrinter{
		&pterm.Success, &pterm.Info, &pterm.Warning, &pterm.Error, &pterm.Debug, &pterm.Fatal, &pterm.Description,
	}
	for _, p := range printers {
		p.Writer = outBuf
	}
	pterm.DisableColor()
	t.Cleanup(func() {
		pterm.SetDefaultOutput(os.Stdout)
		for _, p := range printers {
			p.Writer = os.Stdout
		}
		pterm.EnableColor()
	})
}

// captureStdout collects what fn writes to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// writeTestNotebook writes nb to a temp .ipynb and returns the path.
func writeTestNotebook(t *testing.T, name string, nb *nbformat.Notebook) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, nbformat.WriteFile(path, nb))
	return path
}

type FakeSharingService struct {
	ShareFunc       func(ctx context.Context, nb *nbformat.Notebook, password string) (*sharing.ShareResponse, error)
	UpdateFunc      func(ctx context.Context, id string, nb *nbformat.Notebook, password string) (*sharing.ShareResponse, error)
	RetrieveFunc    func(ctx context.Context, id string) (*sharing.NotebookResponse, error)
	RetrieveURLFunc func(id string) (*url.URL, error)
}

func (f *FakeSharingService) Share(ctx context.Context, nb *nbformat.Notebook, password string) (*sharing.ShareResponse, error) {
	if f.ShareFunc != nil {
		return f.ShareFunc(ctx, nb, password)
	}
	return &sharing.ShareResponse{Notebook: sharing.SharedNotebook{ID: fakeUUID, ReadableID: fakeReadable}}, nil
}

func (f *FakeSharingService) Update(ctx context.Context, id string, nb *nbformat.Notebook, password string) (*sharing.ShareResponse, error) {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, id, nb, password)
	}
	return &sharing.ShareResponse{Notebook: sharing.SharedNotebook{ID: id, ReadableID: fakeReadable}}, nil
}

func (f *FakeSharingService) Retrieve(ctx context.Context, id string) (*sharing.NotebookResponse, error) {
	if f.RetrieveFunc != nil {
		return f.RetrieveFunc(ctx, id)
	}
	return &sharing.NotebookResponse{ID: fakeUUID, ReadableID: fakeReadable, Content: nbformat.New()}, nil
}

func (f *FakeSharingService) RetrieveURL(id string) (*url.URL, error) {
	if f.RetrieveURLFunc != nil {
		return f.RetrieveURLFunc(id)
	}
	return url.Parse("https://share.example.org/api/v1/notebooks/get-by-readable-id/" + id)
}

const (
	fakeUUID     = "e3b0c442-98fc-4fc2-9c9f-8b6d6ed08a1d"
	fakeReadable = "brave-otter-17"
)
