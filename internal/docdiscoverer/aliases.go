package docdiscoverer

// knownDocsHosts maps a lowercase API/product alias to its documentation
// base URL, covering the names callers most commonly ask about.
var knownDocsHosts = map[string]string{
	"stripe":       "https://docs.stripe.com",
	"openai":       "https://platform.openai.com/docs",
	"anthropic":    "https://docs.anthropic.com",
	"github":       "https://docs.github.com",
	"gitlab":       "https://docs.gitlab.com",
	"twilio":       "https://www.twilio.com/docs",
	"sendgrid":     "https://docs.sendgrid.com",
	"aws":          "https://docs.aws.amazon.com",
	"azure":        "https://learn.microsoft.com/en-us/azure",
	"gcp":          "https://cloud.google.com/docs",
	"firebase":     "https://firebase.google.com/docs",
	"stripe api":   "https://docs.stripe.com/api",
	"plaid":        "https://plaid.com/docs",
	"shopify":      "https://shopify.dev/docs",
	"paypal":       "https://developer.paypal.com/docs",
	"slack":        "https://api.slack.com",
	"discord":      "https://discord.com/developers/docs",
	"notion":       "https://developers.notion.com",
	"airtable":     "https://airtable.com/developers/web/api",
	"zoom":         "https://developers.zoom.us/docs",
	"salesforce":   "https://developer.salesforce.com/docs",
	"mongodb":      "https://www.mongodb.com/docs",
	"postgresql":   "https://www.postgresql.org/docs",
	"postgres":     "https://www.postgresql.org/docs",
	"redis":        "https://redis.io/docs",
	"elasticsearch": "https://www.elastic.co/guide",
	"kubernetes":   "https://kubernetes.io/docs",
	"docker":       "https://docs.docker.com",
	"terraform":    "https://developer.hashicorp.com/terraform/docs",
	"react":        "https://react.dev/reference/react",
	"vue":          "https://vuejs.org/guide",
	"angular":      "https://angular.dev/overview",
	"nextjs":       "https://nextjs.org/docs",
	"next.js":      "https://nextjs.org/docs",
	"django":       "https://docs.djangoproject.com",
	"flask":        "https://flask.palletsprojects.com",
	"fastapi":      "https://fastapi.tiangolo.com",
	"express":      "https://expressjs.com",
	"rails":        "https://guides.rubyonrails.org",
	"laravel":      "https://laravel.com/docs",
	"spring":       "https://spring.io/guides",
	"go":           "https://pkg.go.dev/std",
	"golang":       "https://pkg.go.dev/std",
	"rust":         "https://doc.rust-lang.org",
	"python":       "https://docs.python.org/3",
	"node":         "https://nodejs.org/docs",
	"nodejs":       "https://nodejs.org/docs",
	"npm":          "https://docs.npmjs.com",
	"tailwind":     "https://tailwindcss.com/docs",
	"tailwindcss":  "https://tailwindcss.com/docs",
	"graphql":      "https://graphql.org/learn",
	"webpack":      "https://webpack.js.org/concepts",
}

func lookupKnownDocsHost(alias string) string {
	return knownDocsHosts[normalizeAlias(alias)]
}
