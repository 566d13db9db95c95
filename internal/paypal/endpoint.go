package paypal

import "fmt"

// Environment selects between the two API endpoints. Only the hostname
// differs.
type Environment string

const (
	EnvironmentLive    Environment = "live"
	EnvironmentSandbox Environment = "sandbox"
)

func (e Environment) Hostname() (string, error) {
	switch e {
	case EnvironmentLive:
		return "api-m.paypal.com", nil
	case EnvironmentSandbox:
		return "api-m.sandbox.paypal.com", nil
	default:
		return "", fmt.Errorf("unknown api environment: %q", string(e))
	}
}
