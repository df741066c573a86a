package analyzer

// Domain is a named cluster of related keywords used to aggregate topical
// relevance. Weight scales keyword hits; IndustryBoost multiplies the
// domain score when the posting's industry matches.
type Domain struct {
	Keywords      []string
	Weight        float64
	IndustryBoost map[string]float64
}

// TechDomains is the fixed catalogue of technical domains.
var TechDomains = map[string]Domain{
	"databases": {
		Keywords:      []string{"sql", "mysql", "postgresql", "oracle", "mongodb", "nosql", "database", "db", "data", "query"},
		Weight:        1.0,
		IndustryBoost: map[string]float64{"finance": 1.5, "healthcare": 1.3, "retail": 1.2},
	},
	"programming": {
		Keywords:      []string{"python", "java", "c++", "javascript", "nodejs", "php", "ruby", "go", "rust", ".net"},
		Weight:        1.2,
		IndustryBoost: map[string]float64{"technology": 1.8, "finance": 1.3},
	},
	"web": {
		Keywords:      []string{"html", "css", "react", "angular", "vue", "frontend", "backend", "web", "http", "api", "rest"},
		Weight:        1.1,
		IndustryBoost: map[string]float64{"technology": 1.6, "retail": 1.4},
	},
	"cloud": {
		Keywords:      []string{"aws", "azure", "gcp", "cloud", "docker", "kubernetes", "serverless", "microservices"},
		Weight:        1.3,
		IndustryBoost: map[string]float64{"technology": 1.7, "finance": 1.4},
	},
	"networking": {
		Keywords:      []string{"network", "tcp", "ip", "dns", "firewall", "vpn", "router", "switch", "security"},
		Weight:        1.2,
		IndustryBoost: map[string]float64{"technology": 1.5, "healthcare": 1.3},
	},
	"systems": {
		Keywords:      []string{"linux", "windows", "unix", "server", "admin", "infrastructure", "deployment"},
		Weight:        1.1,
		IndustryBoost: map[string]float64{"technology": 1.4, "manufacturing": 1.3},
	},
	"security": {
		Keywords:      []string{"security", "cybersecurity", "encryption", "authentication", "authorization", "compliance"},
		Weight:        1.4,
		IndustryBoost: map[string]float64{"finance": 1.8, "healthcare": 1.6},
	},
	"automation": {
		Keywords:      []string{"automation", "scripting", "powershell", "bash", "workflow", "ci/cd", "devops"},
		Weight:        1.2,
		IndustryBoost: map[string]float64{"technology": 1.6, "manufacturing": 1.4},
	},
	"support": {
		Keywords:      []string{"helpdesk", "support", "troubleshooting", "customer service", "technical support"},
		Weight:        1.0,
		IndustryBoost: map[string]float64{"technology": 1.2},
	},
}

// BusinessDomains is the fixed catalogue of business domains.
var BusinessDomains = map[string]Domain{
	"business_analysis": {
		Keywords:      []string{"business analyst", "requirements", "process improvement", "workflow", "documentation", "stakeholder management", "gap analysis"},
		Weight:        1.0,
		IndustryBoost: map[string]float64{"finance": 1.4, "healthcare": 1.3},
	},
	"finance": {
		Keywords:      []string{"finance", "financial", "accounting", "order to cash", "collections", "credit", "deductions", "revenue"},
		Weight:        1.1,
		IndustryBoost: map[string]float64{"finance": 1.8, "manufacturing": 1.2},
	},
	"project_management": {
		Keywords:      []string{"project management", "scrum", "agile", "kanban", "stakeholder management", "timeline", "deliverables", "milestones"},
		Weight:        1.2,
		IndustryBoost: map[string]float64{"technology": 1.5, "manufacturing": 1.4},
	},
	"business_intelligence": {
		Keywords:      []string{"business intelligence", "bi", "power bi", "tableau", "data visualization", "dashboard", "reporting", "analytics"},
		Weight:        1.3,
		IndustryBoost: map[string]float64{"finance": 1.6, "retail": 1.4},
	},
	"process_improvement": {
		Keywords:      []string{"process improvement", "lean", "six sigma", "process optimization", "efficiency", "continuous improvement"},
		Weight:        1.1,
		IndustryBoost: map[string]float64{"manufacturing": 1.5},
	},
	"erp_systems": {
		Keywords:      []string{"sap", "erp", "enterprise systems", "crm", "salesforce", "workday", "peoplesoft"},
		Weight:        1.0,
		IndustryBoost: map[string]float64{"manufacturing": 1.4, "finance": 1.3},
	},
	"data_analysis": {
		Keywords:      []string{"data analysis", "excel", "pivot tables", "vlookup", "data modeling", "statistical analysis", "metrics"},
		Weight:        1.1,
		IndustryBoost: map[string]float64{"finance": 1.4, "retail": 1.3},
	},
}

type roleType struct {
	Patterns   []string
	Complexity []string
}

// roleTypes drives the first classification pass. Pattern hits count once
// each, with a bonus when they appear in the title area.
var roleTypes = map[string]roleType{
	"technical_it": {
		Patterns: []string{
			"technician", "engineer", "developer", "administrator", "support specialist",
			"network", "system admin", "it specialist", "security analyst", "devops",
			"infrastructure", "it analyst", "systems analyst",
		},
		Complexity: []string{"senior", "lead", "principal", "architect"},
	},
	"business_analyst": {
		Patterns: []string{
			"business analyst", "process analyst", "functional analyst",
			"process development analyst", "business systems analyst",
		},
		Complexity: []string{"senior", "lead", "principal"},
	},
	"finance": {
		Patterns: []string{
			"accountant", "financial analyst", "controller", "finance manager",
			"accounts payable", "accounts receivable",
		},
		Complexity: []string{"senior", "lead"},
	},
	"project_management": {
		Patterns: []string{
			"project manager", "program manager", "scrum master", "project coordinator",
		},
		Complexity: []string{"senior", "principal"},
	},
	"management": {
		Patterns: []string{
			"manager", "director", "supervisor", "team lead", "department head",
		},
		Complexity: []string{"senior", "executive", "vice president"},
	},
}

// businessRoles are the role types whose primary focus is business.
var businessRoles = map[string]bool{
	"business_analyst":   true,
	"finance":            true,
	"project_management": true,
	"management":         true,
}

var technicalContextIndicators = []string{
	"active directory", "powershell", "server", "network", "windows", "linux",
	"infrastructure", "security", "authentication", "user accounts", "provisioning",
	"system administration", "technical", "hardware", "software",
}

var businessContextIndicators = []string{
	"process improvement", "business requirements", "stakeholder", "workflow",
	"order to cash", "collections", "finance", "accounting", "rpa",
	"business intelligence", "transformation", "change management", "business case",
}
