package httpapi

import (
	"regexp"
	"strings"
)

// usernamePatterns 按顺序尝试，第一个命中的生效
var usernamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`github\.com/([a-zA-Z0-9-]+)/?$`),
	regexp.MustCompile(`github\.com/([a-zA-Z0-9-]+)/.*`),
	regexp.MustCompile(`^([a-zA-Z0-9-]+)$`),
}

// ExtractUsername 从主页地址或裸用户名中取出 GitHub 用户名
// 支持 https://github.com/<user>、github.com/<user>/<repo>... 以及 <user>
func ExtractUsername(input string) (string, bool) {
	input = strings.TrimSpace(input)
	for _, re := range usernamePatterns {
		if m := re.FindStringSubmatch(input); m != nil {
			return m[1], true
		}
	}
	return "", false
}
