package model

import (
	"strings"

	"github.com/samber/lo"
)

// DomainSet is the ordered list of customer domains covered by the managed
// certificate. Element 0 is the certificate's primary name. A set never holds
// duplicates.
type DomainSet []string

// ParseList splits a comma-joined parameter value into its elements, dropping
// blanks and duplicates while keeping the stored order.
func ParseList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return lo.Uniq(out)
}

// JoinList is the inverse of ParseList.
func JoinList(items []string) string {
	return strings.Join(items, ",")
}

// NormalizeDomain lowercases a domain and strips any trailing dot.
func NormalizeDomain(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")
}

// Contains reports whether name is in the set.
func (d DomainSet) Contains(name string) bool {
	return lo.Contains(d, name)
}

// Add returns the set with name appended. Adding a present name returns an
// unchanged copy.
func (d DomainSet) Add(name string) DomainSet {
	return lo.Uniq(append(d.clone(), name))
}

// Remove returns the set without name.
func (d DomainSet) Remove(name string) DomainSet {
	return lo.Without(d.clone(), name)
}

// Primary returns the certificate's primary name, or "" for an empty set.
func (d DomainSet) Primary() string {
	if len(d) == 0 {
		return ""
	}
	return d[0]
}

func (d DomainSet) clone() DomainSet {
	out := make(DomainSet, len(d))
	copy(out, d)
	return out
}

// TrackedCertificates is the list of certificate ARNs this service has
// requested. The most recently requested ARN is element 0.
type TrackedCertificates []string

// Track returns the list with arn in front. An ARN already present moves to
// the front.
func (t TrackedCertificates) Track(arn string) TrackedCertificates {
	out := make(TrackedCertificates, 0, len(t)+1)
	out = append(out, arn)
	for _, existing := range t {
		if existing != arn {
			out = append(out, existing)
		}
	}
	return out
}

// Untrack returns the list without the given ARNs.
func (t TrackedCertificates) Untrack(arns ...string) TrackedCertificates {
	return lo.Without([]string(t), arns...)
}

// Primary returns the ARN the distribution should be bound to.
func (t TrackedCertificates) Primary() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}
