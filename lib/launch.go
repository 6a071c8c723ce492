package lib

// LaunchSpec is the final merged configuration handed to
// RunInstances: the source descriptor with any overrides applied on
// top. It is constructed exactly once per clone run and consumed
// exactly once.
type LaunchSpec struct {
	ImageID            string
	InstanceType       string
	KeyName            string
	SubnetID           string
	SecurityGroupIDs   []string
	IamInstanceProfile string
	EbsOptimized       bool
	Tags               map[string]string
}
