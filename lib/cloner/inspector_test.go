package cloner

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/hamfist/ec2-clone/lib"
)

func TestDescribeMapsInstanceFields(t *testing.T) {
	f := newFakeEC2()
	f.instances["i-src"] = fakeSourceInstance()
	ii := newInstanceInspector(f)

	desc, err := ii.Describe(context.Background(), "i-src")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if desc.InstanceID != "i-src" {
		t.Errorf("instance id %q != %q", desc.InstanceID, "i-src")
	}
	if desc.ImageID != "ami-1" {
		t.Errorf("image id %q != %q", desc.ImageID, "ami-1")
	}
	if desc.InstanceType != "t3.micro" {
		t.Errorf("instance type %q != %q", desc.InstanceType, "t3.micro")
	}
	if desc.KeyName != "k1" {
		t.Errorf("key name %q != %q", desc.KeyName, "k1")
	}
	if desc.SubnetID != "sub-1" {
		t.Errorf("subnet id %q != %q", desc.SubnetID, "sub-1")
	}
	if !reflect.DeepEqual(desc.SecurityGroupIDs, []string{"sg-1"}) {
		t.Errorf("security group ids %v != [sg-1]", desc.SecurityGroupIDs)
	}
	if desc.IamInstanceProfile != "arn:aws:iam::123456789012:instance-profile/web" {
		t.Errorf("iam instance profile %q unexpected", desc.IamInstanceProfile)
	}
	if !desc.EbsOptimized {
		t.Errorf("ebs optimized not carried over")
	}
}

func TestDescribeFiltersReservedTags(t *testing.T) {
	f := newFakeEC2()
	f.instances["i-src"] = fakeSourceInstance()
	ii := newInstanceInspector(f)

	desc, err := ii.Describe(context.Background(), "i-src")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if desc.Tags["Name"] != "web-1" {
		t.Errorf("Name tag %q != %q", desc.Tags["Name"], "web-1")
	}
	if _, ok := desc.Tags["aws:cloudformation:stack-name"]; ok {
		t.Errorf("aws: prefixed tag not filtered: %v", desc.Tags)
	}
}

func TestDescribeToleratesSparseInstance(t *testing.T) {
	f := newFakeEC2()
	f.instances["i-min"] = fakeMinimalInstance()
	ii := newInstanceInspector(f)

	desc, err := ii.Describe(context.Background(), "i-min")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if desc.KeyName != "" {
		t.Errorf("expected empty key name, got %q", desc.KeyName)
	}
	if desc.IamInstanceProfile != "" {
		t.Errorf("expected empty iam instance profile, got %q", desc.IamInstanceProfile)
	}
	if len(desc.SecurityGroupIDs) != 0 {
		t.Errorf("expected no security groups, got %v", desc.SecurityGroupIDs)
	}
	if len(desc.Tags) != 0 {
		t.Errorf("expected no tags, got %v", desc.Tags)
	}
}

func TestDescribeNotFound(t *testing.T) {
	f := newFakeEC2()
	ii := newInstanceInspector(f)

	_, err := ii.Describe(context.Background(), "i-missing")

	var notFound *lib.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.InstanceID != "i-missing" {
		t.Errorf("instance id %q != %q", notFound.InstanceID, "i-missing")
	}
}

func TestDescribeProviderFailure(t *testing.T) {
	f := newFakeEC2()
	f.describeInstancesErr = errors.New("RequestLimitExceeded")
	ii := newInstanceInspector(f)

	_, err := ii.Describe(context.Background(), "i-src")

	var provider *lib.ProviderError
	if !errors.As(err, &provider) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provider.Op != "describe instances" {
		t.Errorf("op %q != %q", provider.Op, "describe instances")
	}
}
