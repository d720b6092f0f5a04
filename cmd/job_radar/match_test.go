package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchCommand_RequiresEmail(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "match")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
	assert.Contains(t, string(output), "email")
}

func TestSkillGapCommand_RequiresVacancy(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "skill-gap", "--email", "ada@example.org")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "vacancy")
}
