package domain

import "fmt"

// ProjectProfile is a named project root from the profile registry.
type ProjectProfile struct {
	Name       string
	Root       string
	StartYear  int    // 0 keeps the configured default
	ConfigPath string // optional ingestion config overriding the server default
}

func (p ProjectProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.Root)
}
