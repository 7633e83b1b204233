package provider

import "context"

// Memory is an in-memory Source for tests.
type Memory struct {
	Items []Transaction

	// Err is returned by Transactions if set
	Err error
}

func (m *Memory) Transactions(_ context.Context, _ string) ([]Transaction, string, error) {
	if m.Err != nil {
		return nil, "", m.Err
	}

	return m.Items, "", nil
}
