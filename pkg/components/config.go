package components

// Link is a navigation entry. Href is site-root-relative ("/docs/") or an
// absolute external URL.
type Link struct {
	// ID identifies the link for the active state of the header ("documentation").
	ID string

	Href     string
	Key      string
	Text     string
	External bool

	// ActivePrefix marks the link active on every page under it (navbar).
	ActivePrefix string
}

// Brand is the logo block at the start of the header.
type Brand struct {
	Logo string
	Alt  string
	Home string
}

// FooterSection is one column of the footer.
type FooterSection struct {
	Title    string
	TitleKey string
	Text     string
	TextKey  string
	Links    []Link

	// Inline renders links as paragraphs instead of a list.
	Inline bool
}

// DefaultBrand is the SysManage logo linking to the home page.
var DefaultBrand = Brand{
	Logo: "/assets/images/sysmanage-logo.svg",
	Alt:  "SysManage",
	Home: "/",
}

// DefaultHeaderLinks are the links of the injected documentation header.
var DefaultHeaderLinks = []Link{
	{ID: "documentation", Href: "/docs/", Key: "nav.documentation", Text: "Documentation"},
	{ID: "config-builder", Href: "/config-builder.html", Key: "nav.config_builder", Text: "Configuration Builder"},
	{ID: "github-server", Href: "https://github.com/bceverly/sysmanage", Key: "nav.github_server", Text: "Server GitHub", External: true},
	{ID: "github-agent", Href: "https://github.com/bceverly/sysmanage-agent", Key: "nav.github_agent", Text: "Agent GitHub", External: true},
}

// DefaultNavLinks are the links of the standalone navbar.
var DefaultNavLinks = []Link{
	{ID: "features", Href: "/#features", Key: "nav.features", Text: "Features"},
	{ID: "getting-started", Href: "/#getting-started", Key: "nav.getting_started", Text: "Getting Started"},
	{ID: "documentation", Href: "/docs/", Key: "nav.documentation", Text: "Documentation", ActivePrefix: "/docs/"},
	{ID: "config-builder", Href: "/config-builder.html", Key: "nav.config_builder", Text: "Configuration Builder"},
	{ID: "github", Href: "https://github.com/bceverly/sysmanage", Key: "nav.github", Text: "GitHub", External: true},
}

// DefaultFooterSections are the footer columns.
var DefaultFooterSections = []FooterSection{
	{
		Title:   "SysManage",
		Text:    "Modern system management platform for comprehensive infrastructure monitoring and automation.",
		TextKey: "footer.description",
	},
	{
		Title:    "Documentation",
		TitleKey: "footer.documentation",
		Links: []Link{
			{Href: "/docs/server/", Key: "footer.server_docs", Text: "Server Docs"},
			{Href: "/docs/agent/", Key: "footer.agent_docs", Text: "Agent Docs"},
			{Href: "/docs/api/", Key: "footer.api_reference", Text: "API Reference"},
			{Href: "/docs/security/", Key: "footer.security", Text: "Security"},
		},
	},
	{
		Title:    "Community",
		TitleKey: "footer.community",
		Links: []Link{
			{Href: "https://github.com/bceverly/sysmanage", Key: "footer.github_repo", Text: "GitHub Repository", External: true},
			{Href: "https://github.com/bceverly/sysmanage/issues", Key: "footer.issue_tracker", Text: "Issue Tracker", External: true},
			{Href: "https://github.com/bceverly/sysmanage/issues", Key: "footer.discussions", Text: "Discussions", External: true},
		},
	},
	{
		Title:    "License",
		TitleKey: "footer.license",
		Text:     "Licensed under AGPLv3",
		TextKey:  "footer.licensed_under",
		Inline:   true,
		Links: []Link{
			{Href: "https://github.com/bceverly/sysmanage/blob/main/LICENSE", Key: "footer.view_license", Text: "View License", External: true},
		},
	},
}

// DefaultCopyright is the footer bottom line.
var DefaultCopyright = Link{Key: "footer.copyright", Text: "© 2024 SysManage. All rights reserved."}
