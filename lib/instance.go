package lib

// InstanceDescriptor is the launch-relevant configuration of a
// source EC2 instance, as reported by DescribeInstances. It is
// retrieved once per clone run and never mutated afterwards.
type InstanceDescriptor struct {
	InstanceID         string   `json:"instance_id"`
	ImageID            string   `json:"image_id"`
	InstanceType       string   `json:"instance_type"`
	KeyName            string   `json:"key_name,omitempty"`
	SubnetID           string   `json:"subnet_id"`
	SecurityGroupIDs   []string `json:"security_group_ids,omitempty"`
	IamInstanceProfile string   `json:"iam_instance_profile,omitempty"`
	EbsOptimized       bool     `json:"ebs_optimized"`

	// Tags holds the source instance tags, minus the aws:* keys
	// that EC2 reserves and refuses on new resources.
	Tags map[string]string `json:"tags,omitempty"`
}
