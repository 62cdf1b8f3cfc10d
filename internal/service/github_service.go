package service

import (
	"encoding/json"
	"fmt"
	"learning_coach_backend/internal/config"
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/util"
	"net/http"
	"sort"
	"time"
)

// 活动统计回看的天数窗口
const githubActivityDays = 30

// 语言到进阶方向的映射
var learningPathsByLanguage = map[string][]string{
	"Python":     {"Data Science with Python", "Django Web Development", "Machine Learning"},
	"JavaScript": {"React.js", "Node.js", "TypeScript"},
	"Java":       {"Spring Framework", "Android Development", "Microservices"},
	"C++":        {"System Programming", "Game Development", "Competitive Programming"},
	"Go":         {"Cloud Computing", "Microservices", "DevOps"},
	"Rust":       {"System Programming", "WebAssembly", "Blockchain Development"},
}

// SuggestLearningPaths 依据常用语言推荐进阶方向，去重并保持出现顺序
func SuggestLearningPaths(languages []string) []string {
	suggestions := []string{}
	seen := make(map[string]bool)
	for _, lang := range languages {
		for _, path := range learningPathsByLanguage[lang] {
			if !seen[path] {
				seen[path] = true
				suggestions = append(suggestions, path)
			}
		}
	}
	return suggestions
}

type GitHubService struct {
	baseURL string
	client  *http.Client
}

func NewGitHubService(cfg config.IntegrationsConfig) *GitHubService {
	return &GitHubService{
		baseURL: cfg.GitHubAPIBase,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// GitHubUser 认证接口返回的账号信息
type GitHubUser struct {
	Login string `json:"login"`
	Email string `json:"email"`
}

// Authenticate 用个人访问令牌调用 /user 验证有效性，返回账号信息
func (s *GitHubService) Authenticate(token string) (*GitHubUser, error) {
	req, err := http.NewRequest("GET", s.baseURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	s.setHeaders(req, token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, util.ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: github /user status %d", util.ErrUpstreamFailure, resp.StatusCode)
	}

	var user GitHubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFailure, err)
	}
	return &user, nil
}

// FetchActivity 聚合最近 30 天的活动快照：仓库语言、提交、事件流
func (s *GitHubService) FetchActivity(creds model.GitHubCredentials) (*model.GitHubActivity, error) {
	// 1. 拉取仓库列表
	var repos []model.GitHubRepo
	if err := s.getJSON(creds.Token, s.baseURL+"/user/repos?sort=updated&per_page=100", &repos); err != nil {
		return nil, err
	}

	now := time.Now()
	since := now.AddDate(0, 0, -githubActivityDays)

	activity := &model.GitHubActivity{
		TotalRepositories: len(repos),
		LanguagesUsed:     make(map[string]int),
		RecentCommits:     []model.CommitInfo{},
		ActiveRepos:       []string{},
		ContributionStats: make(map[string]int),
		SyncedAt:          now,
	}

	// 2. 逐仓库统计语言与窗口内提交，单个仓库失败跳过不影响整体
	for _, repo := range repos {
		if repo.Language != "" {
			activity.LanguagesUsed[repo.Language]++
		}

		commits, err := s.listCommits(creds.Token, creds.Username, repo.Name, since)
		if err != nil {
			continue
		}

		activity.TotalCommits += len(commits)
		if len(commits) > 0 {
			activity.ActiveRepos = append(activity.ActiveRepos, repo.Name)
		}

		// 每个仓库最多记 5 条最近提交
		for i, c := range commits {
			if i >= 5 {
				break
			}
			activity.RecentCommits = append(activity.RecentCommits, model.CommitInfo{
				Repo:    repo.Name,
				Message: truncateRunes(c.Commit.Message, 100),
				Date:    c.Commit.Author.Date,
				SHA:     truncateRunes(c.SHA, 7),
			})
		}
	}

	// 3. 事件流统计贡献类型，失败时保持为空
	var events []model.GitHubEvent
	if err := s.getJSON(creds.Token, fmt.Sprintf("%s/users/%s/events?per_page=100", s.baseURL, creds.Username), &events); err == nil {
		for _, e := range events {
			activity.ContributionStats[e.Type]++
		}
	}

	// 4. 最近提交整体按时间倒序，最多保留 20 条
	sort.SliceStable(activity.RecentCommits, func(i, j int) bool {
		return activity.RecentCommits[i].Date.After(activity.RecentCommits[j].Date)
	})
	if len(activity.RecentCommits) > 20 {
		activity.RecentCommits = activity.RecentCommits[:20]
	}

	return activity, nil
}

func (s *GitHubService) listCommits(token, username, repo string, since time.Time) ([]model.GitHubCommit, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/commits?since=%s&author=%s&per_page=50",
		s.baseURL, username, repo, since.UTC().Format(time.RFC3339), username)

	var commits []model.GitHubCommit
	if err := s.getJSON(token, url, &commits); err != nil {
		return nil, err
	}
	return commits, nil
}

// getJSON 带令牌请求并解析 JSON，非 200 一律按上游失败处理
func (s *GitHubService) getJSON(token, url string, out interface{}) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	s.setHeaders(req, token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s status %d", util.ErrUpstreamFailure, url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *GitHubService) setHeaders(req *http.Request, token string) {
	req.Header.Set("Authorization", "token "+token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}

// truncateRunes 按字符截断，避免多字节字符被拦腰切断
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
