package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchResponse_KeywordGroups(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"How do I write a Dockerfile for DOCKER?", DockerResponse},
		{"what is a container", DockerResponse},
		{"Explain Kubernetes", KubernetesResponse},
		{"k8s operators?", KubernetesResponse},
		{"my pipeline is slow", PipelineResponse},
		{"best CI/CD tools", PipelineResponse},
		{"Terraform state locking", TerraformResponse},
		{"what is IaC", TerraformResponse},
		{"hello there", FallbackResponse},
		{"", FallbackResponse},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchResponse(tc.query))
		})
	}
}

func TestMatchResponse_FirstMatchWins(t *testing.T) {
	// docker outranks kubernetes, kubernetes outranks pipeline
	assert.Equal(t, DockerResponse, MatchResponse("kubernetes runs docker containers"))
	assert.Equal(t, KubernetesResponse, MatchResponse("deploy to k8s from my pipeline"))
	assert.Equal(t, PipelineResponse, MatchResponse("terraform in a ci/cd pipeline"))
}

func TestMatchResponse_CIAloneFallsBack(t *testing.T) {
	// the answer table needs "ci/cd", bare "ci" is not enough
	assert.Equal(t, FallbackResponse, MatchResponse("tell me about ci"))
}

func TestMatcher_CustomRules(t *testing.T) {
	m := NewMatcher([]Rule[int]{
		{Keywords: []string{" Alpha "}, Result: 1},
		{Keywords: []string{"", "beta"}, Result: 2},
	}, -1)

	require.Equal(t, 1, m.Match("ALPHA and beta"))
	require.Equal(t, 2, m.Match("just beta"))
	require.Equal(t, -1, m.Match("gamma"))
}
