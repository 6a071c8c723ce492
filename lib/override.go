package lib

import "strings"

// OverrideKey identifies one of the launch configuration fields that
// may be overridden from the command line. The set is closed: keys
// outside it fail at parse time instead of being silently dropped.
type OverrideKey string

const (
	// OverrideImageID suppresses image provisioning and launches
	// from the given AMI instead.
	OverrideImageID OverrideKey = "ImageId"
	// OverrideInstanceType replaces the source instance type.
	OverrideInstanceType OverrideKey = "InstanceType"
	// OverrideKeyName replaces the source SSH key pair name.
	OverrideKeyName OverrideKey = "KeyName"
	// OverrideSubnetID replaces the source subnet placement.
	OverrideSubnetID OverrideKey = "SubnetId"
)

var supportedOverrideKeys = []OverrideKey{
	OverrideImageID,
	OverrideInstanceType,
	OverrideKeyName,
	OverrideSubnetID,
}

// SupportedOverrideKeys returns the supported override keys as a
// comma separated string, for usage and error messages.
func SupportedOverrideKeys() string {
	keys := []string{}
	for _, key := range supportedOverrideKeys {
		keys = append(keys, string(key))
	}
	return strings.Join(keys, ", ")
}

// OverrideSet maps supported override keys to caller-supplied
// values. It is built once from the command line and read-only
// afterwards.
type OverrideSet map[OverrideKey]string

// ParseOverrides builds an OverrideSet from raw key=value command
// line entries. Entries without exactly one "=" and a non-empty key
// fail with MalformedOverrideError; keys outside the supported set
// fail with UnsupportedOverrideError. When the same key appears more
// than once the last occurrence wins.
func ParseOverrides(raw []string) (OverrideSet, error) {
	set := OverrideSet{}
	for _, entry := range raw {
		if strings.Count(entry, "=") != 1 {
			return nil, &MalformedOverrideError{Entry: entry}
		}
		key, value, _ := strings.Cut(entry, "=")
		if key == "" {
			return nil, &MalformedOverrideError{Entry: entry}
		}

		supported := false
		for _, k := range supportedOverrideKeys {
			if OverrideKey(key) == k {
				supported = true
				break
			}
		}
		if !supported {
			return nil, &UnsupportedOverrideError{Key: key}
		}

		set[OverrideKey(key)] = value
	}
	return set, nil
}

// ImageID returns the ImageId override value, or "" when none was
// given. A non-empty value short-circuits image provisioning.
func (o OverrideSet) ImageID() string {
	return o[OverrideImageID]
}

// Apply merges the set into base and returns the resulting
// LaunchSpec, override winning on every populated key. The merge is
// pure: neither the base descriptor nor the set is modified.
func (o OverrideSet) Apply(base *InstanceDescriptor) *LaunchSpec {
	spec := &LaunchSpec{
		ImageID:            base.ImageID,
		InstanceType:       base.InstanceType,
		KeyName:            base.KeyName,
		SubnetID:           base.SubnetID,
		SecurityGroupIDs:   append([]string{}, base.SecurityGroupIDs...),
		IamInstanceProfile: base.IamInstanceProfile,
		EbsOptimized:       base.EbsOptimized,
		Tags:               map[string]string{},
	}
	for key, value := range base.Tags {
		spec.Tags[key] = value
	}

	for key, value := range o {
		switch key {
		case OverrideImageID:
			spec.ImageID = value
		case OverrideInstanceType:
			spec.InstanceType = value
		case OverrideKeyName:
			spec.KeyName = value
		case OverrideSubnetID:
			spec.SubnetID = value
		}
	}

	return spec
}

// MergeOverrides parses raw overrides and applies them to base in
// one step.
func MergeOverrides(base *InstanceDescriptor, raw []string) (*LaunchSpec, error) {
	set, err := ParseOverrides(raw)
	if err != nil {
		return nil, err
	}
	return set.Apply(base), nil
}
