package task

import (
	"github.com/hpratama/taskbin/internal/errors"
)

// Options holds the closed option sets a draft is validated against. The
// sets come from configuration; the bin itself never defines them.
type Options struct {
	Projects []string
	Deploys  []string
	Statuses []string
}

// Validate checks a draft against the required-field and closed-set rules.
// It returns a ValidationError naming the first offending field, and makes
// no remote calls. Deploy and Note are optional; an empty Deploy is valid,
// a non-empty Deploy must be a member of the configured set.
func (o Options) Validate(d Draft) error {
	if d.Name == "" {
		return errors.NewValidationError("name is required").WithField("name")
	}
	if d.Description == "" {
		return errors.NewValidationError("description is required").WithField("description")
	}
	if d.Project == "" {
		return errors.NewValidationError("project is required").WithField("project")
	}
	if !member(o.Projects, d.Project) {
		return errors.NewValidationError("project is not a known project").
			WithField("project").WithValue(d.Project)
	}
	if d.Deploy != "" && !member(o.Deploys, d.Deploy) {
		return errors.NewValidationError("deploy is not a known deployment target").
			WithField("deploy").WithValue(d.Deploy)
	}
	if d.Deadline.IsZero() {
		return errors.NewValidationError("deadline is required").WithField("deadline")
	}
	if d.Status == "" {
		return errors.NewValidationError("status is required").WithField("status")
	}
	if !member(o.Statuses, d.Status) {
		return errors.NewValidationError("status is not a known status").
			WithField("status").WithValue(d.Status)
	}
	return nil
}

func member(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
