package translator

import (
	"errors"
	"fmt"
	"strings"
)

type Format string

const (
	Terraform      Format = "terraform"
	CloudFormation Format = "cloudformation"
	Pulumi         Format = "pulumi"
	Azure          Format = "azure"
	GCP            Format = "gcp"
)

var ErrUnknownFormat = errors.New("unknown iac format")

var formatLabels = map[Format]string{
	Terraform:      "Terraform",
	CloudFormation: "CloudFormation",
	Pulumi:         "Pulumi",
	Azure:          "Azure ARM",
	GCP:            "Google Cloud Deployment Manager",
}

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{Terraform, CloudFormation, Pulumi, Azure, GCP}
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formatLabels[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

func (f Format) Valid() bool {
	_, ok := formatLabels[f]
	return ok
}

func (f Format) Label() string {
	if l, ok := formatLabels[f]; ok {
		return l
	}
	return string(f)
}
