package cmd

import "time"

func (c *commandEntry) perCommandTimeout(defaultTimeout time.Duration) time.Duration {
	if c.Timeout == "" {
		return defaultTimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return defaultTimeout
	}
	return d
}

func (c *commandEntry) settleWindow(defaultSettle time.Duration) time.Duration {
	if c.Settle == "" {
		return defaultSettle
	}
	d, err := time.ParseDuration(c.Settle)
	if err != nil {
		return defaultSettle
	}
	return d
}
