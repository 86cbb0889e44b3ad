package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suPer8Hu/devopstile/internal/assistant"
	"github.com/suPer8Hu/devopstile/internal/config"
	"github.com/suPer8Hu/devopstile/internal/translator"
	"go.uber.org/zap"
)

func testCmd(stdin string) (*cobra.Command, *bytes.Buffer) {
	log = zap.NewNop()
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader(stdin))
	return cmd, out
}

func setTranslateFlags(t *testing.T, from, to, snippets string) {
	t.Helper()
	fromFlag, toFlag, snippetsFlag = from, to, snippets
	t.Cleanup(func() { fromFlag, toFlag, snippetsFlag = "", "", "" })
}

func writeOverlay(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snippets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestAskCmd(t *testing.T) {
	cmd, out := testCmd("")

	require.NoError(t, runAsk(cmd, []string{"how", "do", "I", "use", "Docker?"}))

	got := out.String()
	assert.True(t, strings.HasPrefix(got, assistant.DockerResponse))
	for _, f := range assistant.SelectFAQ("docker") {
		assert.Contains(t, got, f.Question)
	}
}

func TestTranslateCmd_Stdin(t *testing.T) {
	cmd, out := testCmd(`resource "aws_s3_bucket" "b" {}`)
	setTranslateFlags(t, "terraform", "pulumi", "")

	require.NoError(t, runTranslate(cmd, nil))
	assert.Equal(t, translator.Translate("x", translator.Terraform, translator.Pulumi)+"\n", out.String())
}

func TestTranslateCmd_FileAndUnavailablePair(t *testing.T) {
	src := filepath.Join(t.TempDir(), "main.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"resources": []}`), 0o600))

	cmd, out := testCmd("")
	setTranslateFlags(t, "azure", "gcp", "")

	require.NoError(t, runTranslate(cmd, []string{src}))
	assert.Equal(t, "Translation from Azure ARM to Google Cloud Deployment Manager is not available yet.\n", out.String())
}

func TestTranslateCmd_EmptyInput(t *testing.T) {
	cmd, out := testCmd("   \n")
	setTranslateFlags(t, "terraform", "cloudformation", "")

	require.NoError(t, runTranslate(cmd, nil))
	assert.Equal(t, translator.EmptyInputMessage+"\n", out.String())
}

func TestTranslateCmd_Overlay(t *testing.T) {
	path := writeOverlay(t, `
snippets:
  - source: azure
    target: gcp
    body: "resources: []"
`)
	cmd, out := testCmd("{}")
	setTranslateFlags(t, "azure", "gcp", path)

	require.NoError(t, runTranslate(cmd, nil))
	assert.Equal(t, "resources: []\n", out.String())
}

func TestTranslateCmd_UnknownFormat(t *testing.T) {
	cmd, _ := testCmd("x")
	setTranslateFlags(t, "ansible", "terraform", "")

	err := runTranslate(cmd, nil)
	require.ErrorIs(t, err, translator.ErrUnknownFormat)
}

func TestOpenTranslator_SeedsOverlay(t *testing.T) {
	path := writeOverlay(t, `
snippets:
  - source: terraform
    target: pulumi
    body: "export const bucket = 1;"
`)
	c := config.Config{
		DBDriver:       "sqlite",
		DBDSN:          "file:" + t.Name() + "?mode=memory&cache=shared",
		TranslateDelay: 0,
		SnippetsFile:   path,
	}

	svc, closeDB, err := openTranslator(context.Background(), c, zap.NewNop())
	require.NoError(t, err)
	defer closeDB()

	table := svc.Table()
	assert.Len(t, table, len(translator.DefaultTable()))
	got, err := svc.Translate(context.Background(), "x", translator.Terraform, translator.Pulumi)
	require.NoError(t, err)
	assert.Equal(t, "export const bucket = 1;", got)
}

func TestOpenTranslator_BadDriver(t *testing.T) {
	_, _, err := openTranslator(context.Background(), config.Config{DBDriver: "oracle"}, zap.NewNop())
	require.Error(t, err)
}

func TestReplyDelay(t *testing.T) {
	assert.Equal(t, time.Duration(-1), replyDelay(0))
	assert.Equal(t, 250*time.Millisecond, replyDelay(250*time.Millisecond))
}

func TestWorkerRequiresRabbit(t *testing.T) {
	cfg = config.Config{}
	cmd, _ := testCmd("")
	cmd.SetContext(context.Background())

	require.ErrorIs(t, runWorker(cmd, nil), errRabbitRequired)
}
