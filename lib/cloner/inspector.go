package cloner

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/sirupsen/logrus"

	"github.com/hamfist/ec2-clone/lib"
)

// instanceInspector retrieves the launch-relevant configuration of
// the source instance. Read-only; no side effects.
type instanceInspector struct {
	ec2 ec2API
}

func newInstanceInspector(conn ec2API) *instanceInspector {
	return &instanceInspector{ec2: conn}
}

// Describe fetches the instance and flattens it into an
// InstanceDescriptor usable as a RunInstances base.
func (ii *instanceInspector) Describe(ctx context.Context, instanceID string) (*lib.InstanceDescriptor, error) {
	log.WithFields(logrus.Fields{
		"instance_id": instanceID,
	}).Debug("describing source instance")

	resp, err := ii.ec2.DescribeInstancesWithContext(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []*string{aws.String(instanceID)},
	})
	if err != nil {
		if isInstanceNotFound(err) {
			return nil, &lib.NotFoundError{InstanceID: instanceID}
		}
		return nil, &lib.ProviderError{Op: "describe instances", Err: err}
	}

	if len(resp.Reservations) == 0 || len(resp.Reservations[0].Instances) == 0 {
		return nil, &lib.NotFoundError{InstanceID: instanceID}
	}

	return descriptorFromInstance(instanceID, resp.Reservations[0].Instances[0]), nil
}

func descriptorFromInstance(instanceID string, inst *ec2.Instance) *lib.InstanceDescriptor {
	desc := &lib.InstanceDescriptor{
		InstanceID:   instanceID,
		ImageID:      aws.StringValue(inst.ImageId),
		InstanceType: aws.StringValue(inst.InstanceType),
		KeyName:      aws.StringValue(inst.KeyName),
		SubnetID:     aws.StringValue(inst.SubnetId),
		EbsOptimized: aws.BoolValue(inst.EbsOptimized),
		Tags:         map[string]string{},
	}

	for _, sg := range inst.SecurityGroups {
		desc.SecurityGroupIDs = append(desc.SecurityGroupIDs, aws.StringValue(sg.GroupId))
	}

	if inst.IamInstanceProfile != nil {
		desc.IamInstanceProfile = aws.StringValue(inst.IamInstanceProfile.Arn)
	}

	for _, tag := range inst.Tags {
		key := aws.StringValue(tag.Key)
		// EC2 reserves aws:* tag keys and rejects them on new resources
		if strings.HasPrefix(key, "aws:") {
			continue
		}
		desc.Tags[key] = aws.StringValue(tag.Value)
	}

	return desc
}

func isInstanceNotFound(err error) bool {
	if aerr, ok := err.(awserr.Error); ok {
		return strings.HasPrefix(aerr.Code(), "InvalidInstanceID")
	}
	return false
}
