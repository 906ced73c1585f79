//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIEndpoint string
	Token       string
	BookhubPath string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint: os.Getenv("BOOKHUB_TEST_API"),
		Token:       os.Getenv("BOOKHUB_TEST_TOKEN"),
		BookhubPath: getBookhubPath(),
		Verbose:     os.Getenv("BOOKHUB_TEST_VERBOSE") == "true",
	}
}

// getBookhubPath determines the path to the bookhub binary
func getBookhubPath() string {
	if path := os.Getenv("BOOKHUB_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../bookhub",
		"./bookhub",
		"../bookhub",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "bookhub"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIEndpoint == "" || config.Token == "" {
		t.Skip("BOOKHUB_TEST_API or BOOKHUB_TEST_TOKEN not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.BookhubPath); err != nil {
		t.Skipf("bookhub binary not found at %s, skipping integration test", config.BookhubPath)
	}
}

// CommandRunner runs bookhub commands against a private config file
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a runner whose config file holds the test endpoint and token
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "config.yml")

	data, err := yaml.Marshal(map[string]string{
		"api":    config.APIEndpoint,
		"token":  config.Token,
		"output": "table",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configFile, data, 0o600))

	return &CommandRunner{
		config:     config,
		configFile: configFile,
		t:          t,
	}
}

// Run executes a bookhub command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a bookhub command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	// #nosec G204
	cmd := exec.Command(runner.config.BookhubPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BookhubPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON executes a bookhub command with JSON output and decodes it into target
func (runner *CommandRunner) RunJSON(target interface{}, args ...string) error {
	stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
	if err != nil {
		return fmt.Errorf("%w: %s", err, stderr)
	}

	return json.Unmarshal([]byte(stdout), target)
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not valid JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var decoded interface{}
	if err := yaml.Unmarshal([]byte(output), &decoded); err != nil || decoded == nil {
		t.Errorf("Output is not valid YAML: %s", output)
	}
}
