package assistant

import "strings"

// Rule maps a keyword group to a result. A rule matches when the
// lower-cased query contains any of its keywords.
type Rule[T any] struct {
	Keywords []string
	Result   T
}

func (r Rule[T]) matches(q string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

// Matcher evaluates rules top-down; the first match wins.
type Matcher[T any] struct {
	rules    []Rule[T]
	fallback T
}

func NewMatcher[T any](rules []Rule[T], fallback T) *Matcher[T] {
	cp := make([]Rule[T], 0, len(rules))
	for _, r := range rules {
		kw := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				kw = append(kw, k)
			}
		}
		cp = append(cp, Rule[T]{Keywords: kw, Result: r.Result})
	}
	return &Matcher[T]{rules: cp, fallback: fallback}
}

func (m *Matcher[T]) Match(query string) T {
	q := strings.ToLower(query)
	for _, r := range m.rules {
		if r.matches(q) {
			return r.Result
		}
	}
	return m.fallback
}

const (
	DockerResponse     = "Docker is a platform for developing, shipping, and running applications in containers. Containers are lightweight and contain everything needed to run the application, so they're portable across different environments."
	KubernetesResponse = "Kubernetes is an open-source container orchestration platform that automates the deployment, scaling, and management of containerized applications. It groups containers into logical units for easy management and discovery."
	PipelineResponse   = "CI/CD pipelines automate your software delivery process. The pipeline builds code, runs tests, and safely deploys a new version of the application. By automating this process, you reduce the chance of introducing errors when deploying new code."
	TerraformResponse  = "Terraform is an infrastructure as code tool that lets you define both cloud and on-prem resources in human-readable configuration files that you can version, reuse, and share. You can then use a consistent workflow to provision and manage all of your infrastructure."
	FallbackResponse   = "I'm your DevOps assistant. I can help with topics like containerization, Kubernetes, CI/CD pipelines, infrastructure as code, monitoring, and other DevOps practices. What specific information are you looking for?"
)

// ResponseRules is the default answer table, in priority order.
func ResponseRules() []Rule[string] {
	return []Rule[string]{
		{Keywords: []string{"docker", "container"}, Result: DockerResponse},
		{Keywords: []string{"kubernetes", "k8s"}, Result: KubernetesResponse},
		{Keywords: []string{"pipeline", "ci/cd"}, Result: PipelineResponse},
		{Keywords: []string{"terraform", "iac"}, Result: TerraformResponse},
	}
}

var defaultResponder = NewMatcher(ResponseRules(), FallbackResponse)

// MatchResponse returns the canned answer for a free-text query.
func MatchResponse(query string) string {
	return defaultResponder.Match(query)
}
