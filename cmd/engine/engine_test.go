package main

import (
	"bytes"
	"testing"
	"time"

	"jobboard-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJobs(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	jobs := []domain.JobRecord{
		{
			Title:     "Go Engineer",
			Company:   &domain.Company{Name: "Acme"},
			Location:  "Remote",
			JobType:   "Full-time",
			CreatedAt: now.Add(-48 * time.Hour).Format(time.RFC3339),
		},
		{Title: "SRE", CreatedAt: "not a date"},
	}

	var buf bytes.Buffer
	printJobs(&buf, jobs, now)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "TITLE")
	assert.Contains(t, string(lines[1]), "Acme")
	assert.Contains(t, string(lines[1]), domain.PostedAgo(now.Add(-48*time.Hour), now))
	assert.Contains(t, string(lines[2]), "SRE")
}

func TestResolveDataDir(t *testing.T) {
	t.Setenv("JOBBOARD_DATA_DIR", "/tmp/from-env")

	dataDirFlag = ""
	assert.Equal(t, "/tmp/from-env", resolveDataDir())

	dataDirFlag = "/tmp/from-flag"
	t.Cleanup(func() { dataDirFlag = "" })
	assert.Equal(t, "/tmp/from-flag", resolveDataDir())
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "jobs", "live", "logo", "config"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
	assert.NotNil(t, rootCmd.Flags().Lookup("port"))
}
