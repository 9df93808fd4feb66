package seo

import (
	"fmt"
	"sort"
	"strings"
)

// RobotsTxt renders robots.txt from the site's robots settings.
func (s Site) RobotsTxt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Robots.txt para %s\n\n", s.Business.Name)

	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, path := range s.Robots.Disallow {
		fmt.Fprintf(&b, "Disallow: %s\n", path)
	}
	if s.Robots.CrawlDelay > 0 {
		fmt.Fprintf(&b, "Crawl-delay: %d\n", s.Robots.CrawlDelay)
	}

	for _, agent := range s.Robots.BlockedAgents {
		fmt.Fprintf(&b, "\nUser-agent: %s\nDisallow: /\n", agent)
	}

	agents := make([]string, 0, len(s.Robots.DelayedAgents))
	for agent := range s.Robots.DelayedAgents {
		agents = append(agents, agent)
	}
	sort.Strings(agents)
	for _, agent := range agents {
		fmt.Fprintf(&b, "\nUser-agent: %s\nCrawl-delay: %d\n", agent, s.Robots.DelayedAgents[agent])
	}

	b.WriteString("\nUser-agent: AdsBot-Google\nAllow: /\n")
	fmt.Fprintf(&b, "\nSitemap: %s\n", s.AbsoluteURL(SitemapPath))
	return b.String()
}
