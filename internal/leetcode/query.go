package leetcode

const DefaultEndpoint = "https://leetcode.com/graphql"

const profileQuery = `
query getUserProfile($username: String!) {
    matchedUser(username: $username) {
        username
        profile {
            ranking
        }
        languageProblemCount {
            languageName
            problemsSolved
        }
        submitStats: submitStatsGlobal {
            acSubmissionNum {
                difficulty
                count
            }
        }
        badges {
            name
        }
    }
}`

// Request is the POST body sent to the GraphQL endpoint.
type Request struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

// ProfileRequest builds the profile query for username.
func ProfileRequest(username string) Request {
	return Request{
		Query:     profileQuery,
		Variables: map[string]string{"username": username},
	}
}

// Headers the upstream requires before it accepts a request.
var Headers = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":          "*/*",
	"Accept-Language": "en-US,en;q=0.9",
	"Content-Type":    "application/json",
	"Origin":          "https://leetcode.com",
	"Referer":         "https://leetcode.com/",
}
