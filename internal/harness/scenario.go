package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sakal05/souk/internal/ledger"
)

// Scenario defines a conformance test scenario: a sequence of registry
// entry-point calls with expected outcomes, plus assertions on the
// final listing state.
type Scenario struct {
	// Name uniquely identifies this scenario (also the golden file
	// name).
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Receipts is the fixed sequence of receipt ids handed to the
	// engine, one per successful settle step, for deterministic traces.
	Receipts []string `yaml:"receipts,omitempty"`

	// FailReceipts lists receipt ids whose outbound transfer the host
	// rejects, exercising the rollback hook.
	FailReceipts []string `yaml:"fail_receipts,omitempty"`

	// Steps is the call sequence.
	Steps []Step `yaml:"steps"`

	// Final asserts listing state after all steps and all transfer
	// completions.
	Final []FinalState `yaml:"final,omitempty"`
}

// Step is one entry-point call.
type Step struct {
	// Op is "create" or "settle".
	Op string `yaml:"op"`

	// Caller is the host-observed identity making the call.
	Caller string `yaml:"caller"`

	// Attached is the deposit accompanying the call, in base units.
	Attached int64 `yaml:"attached"`

	// Listing is the creation payload (create only).
	Listing *ledger.Payload `yaml:"listing,omitempty"`

	// ID is the target listing id (settle only).
	ID string `yaml:"id,omitempty"`

	// ExpectError is the expected error code ("" means success).
	ExpectError string `yaml:"expect_error,omitempty"`
}

// FinalState asserts fields of one listing after the scenario runs.
// Nil pointers skip the corresponding check.
type FinalState struct {
	ID            string  `yaml:"id"`
	Owner         *string `yaml:"owner,omitempty"`
	Sold          *uint32 `yaml:"sold,omitempty"`
	TotalDonor    *uint32 `yaml:"total_donor,omitempty"`
	TotalDonation *int64  `yaml:"total_donation,omitempty"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	return &sc, nil
}
