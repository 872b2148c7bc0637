package identity

// App is an application name from the closed set the platform ships.
// Permission lookups for anything outside this set are always denied.
type App string

const (
	AppRoster       App = "roster"
	AppTasks        App = "tasks"
	AppSMS          App = "sms"
	AppOralTest     App = "oral_test"
	AppAds          App = "ads"
	AppMdafaat      App = "mdafaat"
	AppControlPanel App = "control_panel"
)

// Page is a sub-resource identifier within an application.
type Page string

const (
	// Oral-test pages.
	PageQuestions  Page = "questions"
	PageUsers      Page = "users"
	PageCategories Page = "categories"
	PageResults    Page = "results"

	// Safety-management pages.
	PageReports Page = "reports"
	PageHazards Page = "hazards"
	PageAudits  Page = "audits"

	// Control-panel pages.
	PagePermissions Page = "permissions"
	PageLevels      Page = "levels"
)

// apps lists every known application, in display order.
var apps = []App{
	AppRoster,
	AppTasks,
	AppSMS,
	AppOralTest,
	AppAds,
	AppMdafaat,
	AppControlPanel,
}

// appPages maps each application to its known pages, in display order.
// Applications without sub-pages are absent.
var appPages = map[App][]Page{
	AppOralTest:     {PageQuestions, PageUsers, PageCategories, PageResults},
	AppSMS:          {PageReports, PageHazards, PageAudits},
	AppControlPanel: {PagePermissions, PageLevels},
}

// Apps returns the closed set of known applications.
func Apps() []App {
	out := make([]App, len(apps))
	copy(out, apps)
	return out
}

// KnownPages returns the closed set of pages for an application. The
// result is a copy; callers may reorder or filter it freely.
func KnownPages(app App) []Page {
	pages, ok := appPages[app]
	if !ok {
		return nil
	}
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

// ParseApp validates a raw application name against the closed set.
func ParseApp(s string) (App, bool) {
	for _, a := range apps {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// ParsePage validates a raw page name against an application's closed set.
func ParsePage(app App, s string) (Page, bool) {
	for _, p := range appPages[app] {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}
