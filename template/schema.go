package template

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/arcana/errors"
)

// SchemaKey holds the optional layout schema version of a document.
const SchemaKey = "schema"

// SupportedSchema is the range of layout versions this build understands.
const SupportedSchema = "^1"

var supported = semver.MustParse("1.0.0")

// SchemaVersion returns the declared version, 1.0.0 when absent.
func (d Document) SchemaVersion() (*semver.Version, error) {
	raw, ok := d[SchemaKey]
	if !ok {
		return supported, nil
	}
	var s string
	switch t := raw.(type) {
	case string:
		s = t
	case float64:
		s = fmt.Sprint(t)
	default:
		return nil, errors.NewInvalidArgumentError("%s must be a version string, got %T", SchemaKey, raw)
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, errors.Wrapf(errors.Mark(err, errors.ErrInvalidArgument), "invalid %s %q", SchemaKey, s)
	}
	return v, nil
}

// CheckSchema fails with errors.ErrUnsupported when the document declares a
// version outside SupportedSchema.
func (d Document) CheckSchema() error {
	v, err := d.SchemaVersion()
	if err != nil {
		return err
	}
	c, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return errors.Wrap(err, "bad schema constraint")
	}
	if !c.Check(v) {
		return errors.WithHintf(
			errors.Mark(errors.Newf("layout schema %s does not satisfy %s", v, SupportedSchema), errors.ErrUnsupported),
			"upgrade arcana or rewrite the layout for schema %s", SupportedSchema,
		)
	}
	return nil
}
