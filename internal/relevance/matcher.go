package relevance

import (
	"regexp"
	"sort"
	"strings"
)

// Matcher computes layered semantic similarity between short skill and
// requirement phrases. Deliberately rule-based: exact match, synonym
// normalization, substring containment, shared topic cluster, then token
// overlap. No embeddings.
type Matcher struct {
	clusters map[string][]string
	synonyms map[string]string
}

func NewMatcher() *Matcher {
	return &Matcher{
		clusters: map[string][]string{
			"database_management": {
				"database", "sql", "mysql", "postgresql", "oracle", "mongodb",
				"data management", "database administration", "dba", "query optimization",
			},
			"network_administration": {
				"network", "networking", "tcp/ip", "dns", "dhcp", "vpn", "firewall",
				"network security", "lan", "wan", "routing", "switching",
			},
			"system_administration": {
				"system admin", "server management", "linux", "windows", "unix",
				"server administration", "infrastructure", "system maintenance",
			},
			"cloud_technologies": {
				"cloud", "aws", "azure", "gcp", "cloud computing", "saas", "paas", "iaas",
				"cloud architecture", "cloud migration", "serverless",
			},
			"business_analysis": {
				"business analyst", "requirements gathering", "process improvement",
				"business requirements", "stakeholder management", "gap analysis",
			},
			"project_management": {
				"project management", "project manager", "scrum", "agile", "kanban",
				"project coordination", "timeline management", "resource planning",
			},
			"data_analysis": {
				"data analysis", "analytics", "reporting", "business intelligence",
				"data visualization", "excel", "pivot tables", "dashboards",
			},
		},
		synonyms: map[string]string{
			"sys admin": "system administrator",
			"sysadmin":  "system administrator",
			"net admin": "network administrator",
			"dba":       "database administrator",
			"pm":        "project manager",
			"ba":        "business analyst",
			"dev":       "developer",
			"qa":        "quality assurance",
		},
	}
}

// Similarity ladder constants.
const (
	simExact     = 1.0
	simSynonym   = 0.95
	simSubstring = 0.8
	simCluster   = 0.7

	jaccardThreshold = 0.3
	jaccardScale     = 0.6
)

// Similarity scores how close two phrases are, in [0,1]. Deterministic for
// a fixed pair.
func (m *Matcher) Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}

	if a == b {
		return simExact
	}

	na, nb := a, b
	if s, ok := m.synonyms[a]; ok {
		na = s
	}
	if s, ok := m.synonyms[b]; ok {
		nb = s
	}
	if na == nb {
		return simSynonym
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		return simSubstring
	}

	if ca, cb := m.cluster(a), m.cluster(b); ca != "" && ca == cb {
		return simCluster
	}

	if j := jaccard(tokenize(a), tokenize(b)); j > jaccardThreshold {
		return j * jaccardScale
	}
	return 0
}

// cluster finds the topic cluster a term belongs to, if any. Cluster names
// are checked in sorted order so membership ties resolve the same way every
// time.
func (m *Matcher) cluster(term string) string {
	names := make([]string, 0, len(m.clusters))
	for name := range m.clusters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, ct := range m.clusters[name] {
			if strings.Contains(term, ct) || strings.Contains(ct, term) {
				return name
			}
		}
	}
	return ""
}

var tokenPattern = regexp.MustCompile(`\b\w+\b`)

func tokenize(s string) map[string]bool {
	out := map[string]bool{}
	for _, tok := range tokenPattern.FindAllString(s, -1) {
		out[tok] = true
	}
	return out
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if b[tok] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
