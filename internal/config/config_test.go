package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medclaim/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 2, cfg.LLM.MaxRetries)
	assert.Equal(t, 4, cfg.LLM.MaxConcurrent)
	assert.Equal(t, 4, cfg.Claim.Workers)
	assert.Equal(t, []string{"bill", "id_card"}, cfg.Claim.RequiredDocuments)
	assert.Equal(t, 10000.0, cfg.Claim.AutoApprovalLimit)
	assert.Equal(t, "reject", cfg.Claim.MissingDocumentAction)
	assert.Equal(t, "review", cfg.Claim.DiscrepancyAction)
	assert.Empty(t, cfg.Claim.ExcludedProcedureCodes)
	assert.Empty(t, cfg.Archive.Bucket, "archiving is disabled by default")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MEDCLAIM_SERVER_PORT", ":9000")
	t.Setenv("MEDCLAIM_LLM_API_KEY", "secret")
	t.Setenv("MEDCLAIM_CLAIM_WORKERS", "8")
	t.Setenv("MEDCLAIM_CLAIM_REQUIRED_DOCUMENTS", "bill, id_card ,discharge_summary")
	t.Setenv("MEDCLAIM_CLAIM_EXCLUDED_PROCEDURE_CODES", "99999,88888")
	t.Setenv("MEDCLAIM_CLAIM_AUTO_APPROVAL_LIMIT", "2500.50")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Port)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, 8, cfg.Claim.Workers)
	assert.Equal(t, []string{"bill", "id_card", "discharge_summary"}, cfg.Claim.RequiredDocuments)
	assert.Equal(t, []string{"99999", "88888"}, cfg.Claim.ExcludedProcedureCodes)
	assert.Equal(t, 2500.50, cfg.Claim.AutoApprovalLimit)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "7777")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.Port)
}
