package cloner

import (
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ec2"
)

// fakeEC2 is a recording, scriptable stand-in for *ec2.EC2.
type fakeEC2 struct {
	mu sync.Mutex

	instances map[string]*ec2.Instance

	createdImageID string
	// imageStates is consumed one entry per DescribeImages call;
	// the last entry repeats once exhausted
	imageStates      []string
	imageStateReason string

	describeInstancesErr error
	createImageErr       error
	describeImagesErr    error
	runInstancesErr      error

	describeInstancesCalls int
	createImageCalls       int
	describeImagesCalls    int
	runInstancesCalls      int

	runInput           *ec2.RunInstancesInput
	launchedInstanceID string
}

func newFakeEC2() *fakeEC2 {
	return &fakeEC2{
		instances:          map[string]*ec2.Instance{},
		createdImageID:     "ami-fresh",
		imageStates:        []string{"available"},
		launchedInstanceID: "i-new",
	}
}

func (f *fakeEC2) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.describeInstancesCalls + f.createImageCalls + f.describeImagesCalls + f.runInstancesCalls
}

func (f *fakeEC2) DescribeInstancesWithContext(_ aws.Context, input *ec2.DescribeInstancesInput, _ ...request.Option) (*ec2.DescribeInstancesOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.describeInstancesCalls++
	if f.describeInstancesErr != nil {
		return nil, f.describeInstancesErr
	}

	id := aws.StringValue(input.InstanceIds[0])
	inst, ok := f.instances[id]
	if !ok {
		return nil, awserr.New("InvalidInstanceID.NotFound",
			fmt.Sprintf("The instance ID '%s' does not exist", id), nil)
	}

	return &ec2.DescribeInstancesOutput{
		Reservations: []*ec2.Reservation{
			{Instances: []*ec2.Instance{inst}},
		},
	}, nil
}

func (f *fakeEC2) CreateImageWithContext(_ aws.Context, input *ec2.CreateImageInput, _ ...request.Option) (*ec2.CreateImageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createImageCalls++
	if f.createImageErr != nil {
		return nil, f.createImageErr
	}

	return &ec2.CreateImageOutput{ImageId: aws.String(f.createdImageID)}, nil
}

func (f *fakeEC2) DescribeImagesWithContext(_ aws.Context, input *ec2.DescribeImagesInput, _ ...request.Option) (*ec2.DescribeImagesOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.describeImagesCalls
	f.describeImagesCalls++
	if f.describeImagesErr != nil {
		return nil, f.describeImagesErr
	}

	if idx >= len(f.imageStates) {
		idx = len(f.imageStates) - 1
	}
	state := f.imageStates[idx]

	img := &ec2.Image{
		ImageId: input.ImageIds[0],
		State:   aws.String(state),
	}
	if state == "failed" && f.imageStateReason != "" {
		img.StateReason = &ec2.StateReason{Message: aws.String(f.imageStateReason)}
	}

	return &ec2.DescribeImagesOutput{Images: []*ec2.Image{img}}, nil
}

func (f *fakeEC2) RunInstancesWithContext(_ aws.Context, input *ec2.RunInstancesInput, _ ...request.Option) (*ec2.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.runInstancesCalls++
	if f.runInstancesErr != nil {
		return nil, f.runInstancesErr
	}

	f.runInput = input
	return &ec2.Reservation{
		Instances: []*ec2.Instance{
			{InstanceId: aws.String(f.launchedInstanceID)},
		},
	}, nil
}

// fakeMinimalInstance has no key pair, no profile, no groups and no
// tags, like an instance launched with bare defaults.
func fakeMinimalInstance() *ec2.Instance {
	return &ec2.Instance{
		InstanceId:   aws.String("i-min"),
		ImageId:      aws.String("ami-1"),
		InstanceType: aws.String("t3.nano"),
		SubnetId:     aws.String("sub-1"),
		EbsOptimized: aws.Bool(false),
	}
}

func fakeSourceInstance() *ec2.Instance {
	return &ec2.Instance{
		InstanceId:   aws.String("i-src"),
		ImageId:      aws.String("ami-1"),
		InstanceType: aws.String("t3.micro"),
		KeyName:      aws.String("k1"),
		SubnetId:     aws.String("sub-1"),
		EbsOptimized: aws.Bool(true),
		SecurityGroups: []*ec2.GroupIdentifier{
			{GroupId: aws.String("sg-1"), GroupName: aws.String("web")},
		},
		IamInstanceProfile: &ec2.IamInstanceProfile{
			Arn: aws.String("arn:aws:iam::123456789012:instance-profile/web"),
		},
		Tags: []*ec2.Tag{
			{Key: aws.String("Name"), Value: aws.String("web-1")},
			{Key: aws.String("aws:cloudformation:stack-name"), Value: aws.String("web-stack")},
		},
	}
}
