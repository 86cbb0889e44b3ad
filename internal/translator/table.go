package translator

import (
	"fmt"
	"sort"
	"strings"
)

// PairKey is an ordered (source, target) format pair.
type PairKey struct {
	Source Format
	Target Format
}

func (k PairKey) String() string { return string(k.Source) + "->" + string(k.Target) }

// Table holds the example snippet for each populated pair. A missing key
// means the pair is not supported.
type Table map[PairKey]string

func DefaultTable() Table {
	return Table{
		{Terraform, CloudFormation}: terraformToCloudFormation,
		{Terraform, Pulumi}:         terraformToPulumi,
		{Terraform, Azure}:          terraformToAzure,
		{Terraform, GCP}:            terraformToGCP,
		{CloudFormation, Terraform}: cloudFormationToTerraform,
		{CloudFormation, Pulumi}:    cloudFormationToPulumi,
		{Pulumi, Terraform}:         pulumiToTerraform,
		{Pulumi, CloudFormation}:    pulumiToCloudFormation,
		{Azure, Terraform}:          azureToTerraform,
		{GCP, Terraform}:            gcpToTerraform,
	}
}

func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Merge copies every entry of other into t, replacing existing bodies.
func (t Table) Merge(other Table) {
	for k, v := range other {
		t[k] = v
	}
}

// Pairs returns the populated keys sorted by source then target.
func (t Table) Pairs() []PairKey {
	keys := make([]PairKey, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Source != keys[j].Source {
			return keys[i].Source < keys[j].Source
		}
		return keys[i].Target < keys[j].Target
	})
	return keys
}

const EmptyInputMessage = "Please enter some source code to translate."

func UnavailableMessage(source, target Format) string {
	return fmt.Sprintf("Translation from %s to %s is not available yet.", source.Label(), target.Label())
}

// Translate returns the example snippet for the pair. The source text is
// only checked for emptiness; its content never affects the result.
func (t Table) Translate(code string, source, target Format) string {
	if strings.TrimSpace(code) == "" {
		return EmptyInputMessage
	}
	if out, ok := t[PairKey{Source: source, Target: target}]; ok {
		return out
	}
	return UnavailableMessage(source, target)
}

var builtin = DefaultTable()

// Translate looks the pair up in the built-in table.
func Translate(code string, source, target Format) string {
	return builtin.Translate(code, source, target)
}
