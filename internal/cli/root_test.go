package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbckr/insight/internal/version"
)

// fakeInsight answers every endpoint with a canned body and counts requests.
type fakeInsight struct {
	bodies map[string]string
	calls  atomic.Int32
}

func (f *fakeInsight) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	_, _ = io.Copy(io.Discard, r.Body)
	w.Header().Set("Content-Type", "application/json")
	body, ok := f.bodies[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = io.WriteString(w, body)
}

func newFakeInsight(t *testing.T, bodies map[string]string) (*fakeInsight, string) {
	t.Helper()
	f := &fakeInsight{bodies: bodies}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv.URL
}

// run executes the root command with an isolated config file.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	return runWithConfig(t, cfgFile, stdin, args...)
}

func runWithConfig(t *testing.T, cfgFile, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config=" + cfgFile}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestLookupCmd_JSON(t *testing.T) {
	fake, baseURL := newFakeInsight(t, map[string]string{
		"/whois": `[{"registrar":"a"},{"registrar":"b"}]`,
	})

	out, err := run(t, "", "lookup", "--api-key=k", "--base-url="+baseURL, "-o", "json", "example.com", "127.0.0.1")
	require.NoError(t, err)

	var results []struct {
		Entity struct {
			Value string `json:"value"`
			Type  string `json:"type"`
		} `json:"entity"`
		Data *struct {
			Details struct {
				Result []any  `json:"result"`
				Link   string `json:"link"`
			} `json:"details"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "example.com", results[0].Entity.Value)
	assert.Equal(t, "DOMAIN", results[0].Entity.Type)
	require.NotNil(t, results[0].Data)
	assert.Len(t, results[0].Data.Details.Result, 2)
	assert.Equal(t, "https://apps.hyas.com/static/details?domain=example.com", results[0].Data.Details.Link)
	assert.Nil(t, results[1].Data, "loopback is never looked up")
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestLookupCmd_Stdin(t *testing.T) {
	_, baseURL := newFakeInsight(t, map[string]string{
		"/whois":      `[{"registrar":"a"}]`,
		"/passivedns": `[{"domain":"dns.google"}]`,
	})

	out, err := run(t, "# iocs\nexample.com\n8.8.8.8\n", "lookup", "--api-key=k", "--base-url="+baseURL, "-o", "plain")
	require.NoError(t, err)
	assert.Equal(t,
		"example.com\tDOMAIN\t1\thttps://apps.hyas.com/static/details?domain=example.com\n"+
			"8.8.8.8\tIPv4\t1\thttps://apps.hyas.com/static/details?ip=8.8.8.8\n",
		out)
}

func TestLookupCmd_Defang(t *testing.T) {
	_, baseURL := newFakeInsight(t, map[string]string{"/whois": `[{}]`})

	out, err := run(t, "", "lookup", "--api-key=k", "--base-url="+baseURL, "-o", "plain", "--defang", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "example[.]com\tDOMAIN\t1\thxxps://apps[.]hyas[.]com/static/details?domain=example[.]com\n", out)
}

func TestLookupCmd_MissingAPIKey(t *testing.T) {
	fake, baseURL := newFakeInsight(t, nil)

	_, err := run(t, "", "lookup", "--base-url="+baseURL, "example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKey")
	assert.Zero(t, fake.calls.Load())
}

func TestLookupCmd_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"unauthorized","message":"invalid api key"}`)
	}))
	t.Cleanup(srv.Close)

	_, err := run(t, "", "lookup", "--api-key=bad", "--base-url="+srv.URL, "example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized: invalid api key")
}

func TestLookupCmd_NoUsableInput(t *testing.T) {
	_, err := run(t, "", "lookup", "--api-key=k", "not valid!")
	require.Error(t, err)
}

func TestDetailsCmd_Domain(t *testing.T) {
	fake, baseURL := newFakeInsight(t, map[string]string{
		"/whois":           `[{"registrar":"a"}]`,
		"/passivedns":      `[{"ipv4":"1.2.3.4"}]`,
		"/ssl_certificate": `[{"cert_key":"abc"}]`,
	})

	out, err := run(t, "", "details", "--api-key=k", "--base-url="+baseURL, "-o", "plain", "example.com")
	require.NoError(t, err)
	assert.Equal(t,
		"link\thttps://apps.hyas.com/static/details?domain=example.com\n"+
			"result\t{\"registrar\":\"a\"}\n"+
			"domainSsl\t{\"cert_key\":\"abc\"}\n"+
			"domainPassive\t{\"ipv4\":\"1.2.3.4\"}\n",
		out)
	// one WHOIS request plus ssl, passive DNS and sample
	assert.Equal(t, int32(4), fake.calls.Load())
}

func TestDetailsCmd_NoData(t *testing.T) {
	fake, baseURL := newFakeInsight(t, nil)

	out, err := run(t, "", "details", "--api-key=k", "--base-url="+baseURL, "example.com")
	require.NoError(t, err)
	assert.Equal(t, "No data for DOMAIN example.com\n", out)
	assert.Equal(t, int32(1), fake.calls.Load(), "details are skipped without batch data")
}

func TestValidateCmd(t *testing.T) {
	out, err := run(t, "", "validate", "-o", "plain")
	require.Error(t, err)
	assert.Equal(t, "apiKey\tYou must provide a HYAS Insight API key\n", out)

	out, err = run(t, "", "validate", "--api-key=k", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid":true,"errors":[]}`, out)
}

func TestConfigCmd_SetGet(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")

	_, err := runWithConfig(t, cfgFile, "", "config", "set", "api-key", "secret-1234")
	require.NoError(t, err)
	_, err = runWithConfig(t, cfgFile, "", "config", "set", "max_results", "9")
	require.NoError(t, err)

	data, err := os.ReadFile(cfgFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "api_key: secret-1234")
	assert.Contains(t, string(data), "max_results: 9")

	out, err := runWithConfig(t, cfgFile, "", "config", "get", "api_key")
	require.NoError(t, err)
	assert.Equal(t, "*******1234\n", out)

	out, err = runWithConfig(t, cfgFile, "", "config", "get", "max-results")
	require.NoError(t, err)
	assert.Equal(t, "9\n", out)

	_, err = runWithConfig(t, cfgFile, "", "config", "set", "output", "xml")
	require.Error(t, err)
	_, err = runWithConfig(t, cfgFile, "", "config", "get", "nope")
	require.Error(t, err)
}

func TestConfigCmd_Path(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	out, err := runWithConfig(t, cfgFile, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, cfgFile+"\n", out)
}

func TestVersionCmd_JSON(t *testing.T) {
	out, err := run(t, "", "version", "-o", "json")
	require.NoError(t, err)
	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.Version)
}

func TestCompletionCmd(t *testing.T) {
	out, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "insight")

	_, err = run(t, "", "completion", "tcsh")
	require.Error(t, err)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", maskSecret(""))
	assert.Equal(t, "***", maskSecret("abc"))
	assert.Equal(t, "****cdef", maskSecret("abcdcdef"))
}
