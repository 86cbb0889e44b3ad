package assistant

type FaqEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FaqSet always holds exactly four entries.
type FaqSet [4]FaqEntry

var generalFAQs = FaqSet{
	{
		Question: "What is DevOps?",
		Answer:   "DevOps is a set of practices that combines software development (Dev) and IT operations (Ops) to shorten the systems development life cycle while delivering features, fixes, and updates frequently in close alignment with business objectives.",
	},
	{
		Question: "What are CI/CD pipelines?",
		Answer:   "CI/CD stands for Continuous Integration and Continuous Delivery/Deployment. These pipelines automate the building, testing, and deployment of applications, enabling teams to release code changes more frequently and reliably.",
	},
	{
		Question: "What is Infrastructure as Code (IaC)?",
		Answer:   "Infrastructure as Code is the process of managing and provisioning computer data centers through machine-readable definition files, rather than physical hardware configuration or interactive configuration tools.",
	},
	{
		Question: "Which tools are commonly used for monitoring in DevOps?",
		Answer:   "Common monitoring tools include Prometheus, Grafana, Nagios, New Relic, Datadog, and ELK Stack (Elasticsearch, Logstash, and Kibana).",
	},
}

var dockerFAQs = FaqSet{
	{
		Question: "What is Docker?",
		Answer:   "Docker is a platform for developing, shipping, and running applications in isolated environments called containers.",
	},
	{
		Question: "What's the difference between Docker and virtual machines?",
		Answer:   "Docker containers share the host OS kernel, making them more lightweight than VMs, which include a full OS copy.",
	},
	{
		Question: "What is Docker Compose?",
		Answer:   "Docker Compose is a tool for defining and running multi-container Docker applications using a YAML file.",
	},
	{
		Question: "How do I optimize Docker images?",
		Answer:   "Use multi-stage builds, minimize layers, leverage caching, and use lightweight base images like Alpine.",
	},
}

var kubernetesFAQs = FaqSet{
	{
		Question: "What is Kubernetes?",
		Answer:   "Kubernetes is an open-source container orchestration platform that automates the deployment, scaling, and management of containerized applications.",
	},
	{
		Question: "What are Kubernetes pods?",
		Answer:   "Pods are the smallest deployable units in Kubernetes that can be created and managed. A pod contains one or more containers.",
	},
	{
		Question: "What's the difference between a Deployment and StatefulSet?",
		Answer:   "Deployments are for stateless applications, while StatefulSets are for applications that require persistent storage and stable network identifiers.",
	},
	{
		Question: "What is a Kubernetes Ingress?",
		Answer:   "Ingress is an API object that manages external access to services in a cluster, typically HTTP, providing load balancing and name-based virtual hosting.",
	},
}

var cicdFAQs = FaqSet{
	{
		Question: "What is CI/CD?",
		Answer:   "CI/CD stands for Continuous Integration and Continuous Delivery/Deployment. It automates building, testing, and deployment, enabling faster releases.",
	},
	{
		Question: "What are popular CI/CD tools?",
		Answer:   "Popular tools include Jenkins, GitHub Actions, GitLab CI/CD, CircleCI, Travis CI, and TeamCity.",
	},
	{
		Question: "What's the difference between Continuous Delivery and Continuous Deployment?",
		Answer:   "Continuous Delivery ensures code can be deployed at any time but requires manual approval, while Continuous Deployment automatically deploys every change that passes tests.",
	},
	{
		Question: "What are CI/CD best practices?",
		Answer:   "Best practices include automated testing, failing fast, maintaining a single source of truth, using infrastructure as code, and keeping builds fast.",
	},
}

// GeneralFAQs is the set shown before any query has been made.
func GeneralFAQs() FaqSet { return generalFAQs }

// FAQRules is the default FAQ table. The CI/CD group matches bare "ci" and
// "cd", so it is broader than the answer table's "ci/cd".
func FAQRules() []Rule[FaqSet] {
	return []Rule[FaqSet]{
		{Keywords: []string{"docker", "container"}, Result: dockerFAQs},
		{Keywords: []string{"kubernetes", "k8s"}, Result: kubernetesFAQs},
		{Keywords: []string{"ci", "cd", "pipeline"}, Result: cicdFAQs},
	}
}

var defaultFAQSelector = NewMatcher(FAQRules(), generalFAQs)

// SelectFAQ picks the FAQ set relevant to a query.
func SelectFAQ(query string) FaqSet {
	return defaultFAQSelector.Match(query)
}
