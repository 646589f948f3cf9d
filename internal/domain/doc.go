// Package domain contains the types shared by every layer of the commit
// coordinator: the execution affinity of a persistence context, the result
// of a commit attempt, units of work, and the sentinel errors used for
// errors.Is checks.
package domain
