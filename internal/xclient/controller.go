package xclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/rs/zerolog"

	"github.com/ibeckermayer/xbot/internal/config"
	"github.com/ibeckermayer/xbot/internal/types"
)

// DefaultConnectURL lists accounts X suggests following.
const DefaultConnectURL = "https://x.com/i/connect_people"

const (
	followPrefix    = "Follow "
	followingPrefix = "Following "
	scrollStep      = 500
	pollInterval    = 250 * time.Millisecond
	maxPostScrolls  = 5
)

// Post is a tweet located on the current page by LatestPost.
type Post struct {
	Link    string
	TweetID string
	Author  string
	Liked   bool

	mark string
}

// Controller performs X.com actions in one browser tab. Methods must not
// be called concurrently on the same Controller.
type Controller struct {
	tab    context.Context
	spacer *spacer
	logger zerolog.Logger

	pageTimeout time.Duration
	scrollPause time.Duration

	// ConnectURL is the page FollowByKeywords follows from.
	ConnectURL string
}

func newController(tab context.Context, cfg config.BrowserConfig, sp *spacer, logger zerolog.Logger) *Controller {
	timeout := cfg.PageTimeout.Std()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Controller{
		tab:         tab,
		spacer:      sp,
		logger:      logger,
		pageTimeout: timeout,
		scrollPause: 700 * time.Millisecond,
		ConnectURL:  DefaultConnectURL,
	}
}

// run executes actions in the tab, bounded by timeout when positive and
// cancelled together with ctx.
func (c *Controller) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(c.tab)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if timeout > 0 {
		var cancelTimeout context.CancelFunc
		runCtx, cancelTimeout = context.WithTimeout(runCtx, timeout)
		defer cancelTimeout()
	}

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// act runs user-visible actions after waiting for the action spacer.
func (c *Controller) act(ctx context.Context, actions ...chromedp.Action) error {
	if err := c.spacer.Wait(ctx); err != nil {
		return err
	}
	return c.run(ctx, c.pageTimeout, actions...)
}

func (c *Controller) eval(ctx context.Context, script string, res any) error {
	return c.run(ctx, c.pageTimeout, chromedp.Evaluate(script, res))
}

func (c *Controller) navigate(ctx context.Context, url string) error {
	if err := c.run(ctx, c.pageTimeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// poll evaluates script until it returns a non-empty string or timeout
// passes, returning the last value.
func (c *Controller) poll(ctx context.Context, timeout time.Duration, script string) (string, error) {
	deadline := time.Now().Add(timeout)
	for {
		var got string
		if err := c.eval(ctx, script, &got); err != nil && ctx.Err() != nil {
			return "", ctx.Err()
		}
		if got != "" || !time.Now().Before(deadline) {
			return got, nil
		}
		if err := sleep(ctx, pollInterval); err != nil {
			return "", err
		}
	}
}

func (c *Controller) check(ctx context.Context, script string) (bool, error) {
	var ok bool
	err := c.eval(ctx, script, &ok)
	return ok, err
}

func (c *Controller) scrollHeight(ctx context.Context) (int, error) {
	var h int
	err := c.eval(ctx, scrollHeightJS, &h)
	return h, err
}

// SignIn makes sure username is the signed-in account, signing out of a
// different account first. It returns ErrVerificationRequired when X asks
// for a code.
func (c *Controller) SignIn(ctx context.Context, username, password, email string) error {
	if err := c.navigate(ctx, "https://x.com/home"); err != nil {
		return err
	}

	step, err := c.poll(ctx, c.pageTimeout, homeOrLoginJS())
	if err != nil {
		return err
	}
	if step == stepHome {
		var handle string
		if err := c.eval(ctx, accountHandleJS(), &handle); err != nil {
			return fmt.Errorf("read signed-in account: %w", err)
		}
		if strings.EqualFold(strings.TrimPrefix(handle, "@"), username) {
			c.logger.Info().Str("username", username).Msg("already signed in")
			return nil
		}
		c.logger.Info().Str("current", handle).Str("username", username).Msg("signed in as another account, signing out")
		if err := c.logout(ctx); err != nil {
			return err
		}
	}

	return c.login(ctx, username, password, email)
}

func homeOrLoginJS() string {
	return fmt.Sprintf(`(() => {
		if (document.querySelector(%s)) return %s;
		if (document.querySelector(%s)) return "login";
		return "";
	})()`, js(HomeTimeline), js(stepHome), js(LoginButton))
}

func (c *Controller) logout(ctx context.Context) error {
	if err := c.act(ctx, chromedp.Click(AccountMenu, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("open account menu: %w", err)
	}
	if err := c.act(ctx, chromedp.Click(LogoutLink, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click logout: %w", err)
	}
	if err := c.act(ctx,
		chromedp.Click(ConfirmSheet, chromedp.ByQuery),
		chromedp.WaitVisible(LoginButton, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("confirm logout: %w", err)
	}
	return nil
}

func (c *Controller) login(ctx context.Context, username, password, email string) error {
	if err := c.navigate(ctx, "https://x.com/i/flow/login"); err != nil {
		return err
	}
	if err := c.act(ctx,
		chromedp.WaitVisible(UsernameInput, chromedp.ByQuery),
		chromedp.SendKeys(UsernameInput, username+kb.Enter, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("enter username: %w", err)
	}

	step, err := c.poll(ctx, c.pageTimeout, loginStepJS())
	if err != nil {
		return err
	}
	if step == stepEmail {
		c.logger.Info().Msg("email challenge shown")
		if email == "" {
			return fmt.Errorf("email challenge shown but no email configured: %w", ErrVerificationRequired)
		}
		if err := c.act(ctx, chromedp.SendKeys(ChallengeInput, email+kb.Enter, chromedp.ByQuery)); err != nil {
			return fmt.Errorf("enter email: %w", err)
		}
		if step, err = c.poll(ctx, c.pageTimeout, loginStepJS()); err != nil {
			return err
		}
	}
	switch step {
	case stepPassword:
	case stepVerification:
		return ErrVerificationRequired
	default:
		return fmt.Errorf("unexpected sign-in step %q after username", step)
	}

	if err := c.act(ctx, chromedp.SendKeys(PasswordInput, password+kb.Enter, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("enter password: %w", err)
	}
	step, err = c.poll(ctx, c.pageTimeout, loginStepJS())
	if err != nil {
		return err
	}
	switch step {
	case stepHome:
		c.logger.Info().Str("username", username).Msg("signed in")
		return nil
	case stepVerification:
		return ErrVerificationRequired
	default:
		return fmt.Errorf("sign-in did not reach the home timeline (step %q)", step)
	}
}

// AccountLocked reports whether X shows the locked-account page.
func (c *Controller) AccountLocked(ctx context.Context) (bool, error) {
	return c.check(ctx, bodyContainsJS(textAccountLocked))
}

// UserExists opens the profile of username and returns its display name,
// or ErrUserNotFound.
func (c *Controller) UserExists(ctx context.Context, username string) (string, error) {
	if err := c.navigate(ctx, "https://x.com/"+username); err != nil {
		return "", err
	}

	state, err := c.poll(ctx, c.pageTimeout, fmt.Sprintf(`(() => {
		if (%s) return "missing";
		if (%s) return "found";
		return "";
	})()`, bodyContainsJS(textNotFound), existsJS(ProfileUserName)))
	if err != nil {
		return "", err
	}
	if state != "found" {
		return "", fmt.Errorf("%s: %w", username, ErrUserNotFound)
	}

	var name string
	if err := c.eval(ctx, userNameJS(), &name); err != nil {
		return "", fmt.Errorf("read name of %s: %w", username, err)
	}
	return name, nil
}

// FollowingCount reads how many accounts username follows.
func (c *Controller) FollowingCount(ctx context.Context, username string) (int, error) {
	if err := c.navigate(ctx, "https://x.com/"+username); err != nil {
		return 0, err
	}
	text, err := c.poll(ctx, c.pageTimeout, followingCountJS(username))
	if err != nil {
		return 0, err
	}
	if text == "" {
		return 0, fmt.Errorf("following count of %s not found", username)
	}
	return parseCount(text), nil
}

// FollowingLinks scrolls through the accounts username follows and
// returns their normalized profile links in page order.
func (c *Controller) FollowingLinks(ctx context.Context, username string) ([]string, error) {
	if err := c.navigate(ctx, "https://x.com/"+username+"/following"); err != nil {
		return nil, err
	}
	if err := c.run(ctx, c.pageTimeout, chromedp.WaitVisible(FollowingTimeline, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("following timeline: %w", err)
	}

	var links []string
	seen := make(map[string]bool)
	lastHeight, err := c.scrollHeight(ctx)
	if err != nil {
		return nil, err
	}

	for {
		var batch []string
		if err := c.eval(ctx, followingLinksJS(), &batch); err != nil {
			return links, fmt.Errorf("read following links: %w", err)
		}
		for _, raw := range batch {
			link := normalizeProfileURL(raw)
			if link == "" || seen[link] {
				continue
			}
			seen[link] = true
			links = append(links, link)
		}

		if err := c.eval(ctx, scrollPageJS, nil); err != nil {
			return links, err
		}
		if err := sleep(ctx, c.scrollPause); err != nil {
			return links, err
		}
		height, err := c.scrollHeight(ctx)
		if err != nil {
			return links, err
		}
		if height == lastHeight {
			break
		}
		lastHeight = height
	}

	c.logger.Info().Str("username", username).Int("count", len(links)).Msg("following list scraped")
	return links, nil
}

// ScrapeProfile reads the public details of the profile at link. Source
// is left for the caller to set.
func (c *Controller) ScrapeProfile(ctx context.Context, link string) (*types.Profile, error) {
	link = normalizeProfileURL(link)
	if link == "" {
		return nil, fmt.Errorf("not a profile link")
	}
	if err := c.navigate(ctx, link); err != nil {
		return nil, err
	}
	if _, err := c.WaitOutRetry(ctx, time.Minute); err != nil {
		return nil, err
	}
	if err := c.run(ctx, c.pageTimeout, chromedp.WaitVisible(ProfileUserName, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("profile %s: %w", link, err)
	}

	var raw rawProfile
	if err := c.eval(ctx, profileJS(), &raw); err != nil {
		return nil, fmt.Errorf("read profile %s: %w", link, err)
	}

	return &types.Profile{
		Link:           link,
		Username:       usernameFromLink(link),
		Name:           raw.Name,
		Bio:            raw.Bio,
		Location:       raw.Location,
		Website:        raw.Website,
		Joined:         raw.Joined,
		FollowingCount: parseCount(raw.Following),
		FollowersCount: parseCount(raw.Followers),
		ScrapedAt:      time.Now(),
	}, nil
}

func (c *Controller) followLimitShown(ctx context.Context) (bool, error) {
	return c.check(ctx, elementTextJS(Toast, textFollowLimit))
}

// FollowByKeywords follows up to limit suggested accounts whose bio
// matches keywords and returns the links followed. When X refuses further
// follows it returns what was followed so far with ErrFollowLimitReached.
func (c *Controller) FollowByKeywords(ctx context.Context, keywords []string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	if err := c.navigate(ctx, c.ConnectURL); err != nil {
		return nil, err
	}
	if err := c.run(ctx, c.pageTimeout, chromedp.WaitVisible(UserCell, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("connect page: %w", err)
	}

	var followed []string
	seen := make(map[string]bool)
	lastHeight, err := c.scrollHeight(ctx)
	if err != nil {
		return nil, err
	}

	for len(followed) < limit {
		var cells []rawCell
		if err := c.eval(ctx, cellsJS("", followPrefix), &cells); err != nil {
			return followed, fmt.Errorf("read user cells: %w", err)
		}

		for _, cell := range cells {
			if len(followed) >= limit {
				break
			}
			link := normalizeProfileURL(cell.Link)
			if link == "" || seen[link] {
				continue
			}
			seen[link] = true
			if !cell.HasButton || !matchesKeywords(cell.Bio, keywords) {
				continue
			}

			if hit, err := c.followLimitShown(ctx); err != nil {
				return followed, err
			} else if hit {
				c.logger.Warn().Int("followed", len(followed)).Msg("follow limit notice shown")
				return followed, ErrFollowLimitReached
			}

			sel := cellButtonSelector(cell.Mark, followPrefix)
			if err := c.act(ctx,
				chromedp.ScrollIntoView(sel, chromedp.ByQuery),
				chromedp.Click(sel, chromedp.ByQuery),
			); err != nil {
				if ctx.Err() != nil {
					return followed, ctx.Err()
				}
				c.logger.Warn().Err(err).Str("link", link).Msg("follow click failed")
				continue
			}
			followed = append(followed, link)
			c.logger.Debug().Str("link", link).Msg("followed")
		}

		if len(followed) >= limit {
			break
		}
		if err := c.eval(ctx, scrollByJS(scrollStep), nil); err != nil {
			return followed, err
		}
		if err := sleep(ctx, c.scrollPause); err != nil {
			return followed, err
		}
		height, err := c.scrollHeight(ctx)
		if err != nil {
			return followed, err
		}
		if height == lastHeight {
			c.logger.Info().Int("followed", len(followed)).Msg("no more suggested accounts")
			break
		}
		lastHeight = height
	}

	if hit, err := c.followLimitShown(ctx); err == nil && hit {
		return followed, ErrFollowLimitReached
	}
	return followed, nil
}

// Unfollow unfollows up to count accounts from the top of username's
// following list and returns the links unfollowed.
func (c *Controller) Unfollow(ctx context.Context, username string, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}
	if err := c.navigate(ctx, "https://x.com/"+username+"/following"); err != nil {
		return nil, err
	}
	if err := c.run(ctx, c.pageTimeout, chromedp.WaitVisible(FollowingTimeline, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("following timeline: %w", err)
	}

	var unfollowed []string
	lastHeight, err := c.scrollHeight(ctx)
	if err != nil {
		return nil, err
	}

	for len(unfollowed) < count {
		var cells []rawCell
		if err := c.eval(ctx, cellsJS(FollowingTimeline, followingPrefix), &cells); err != nil {
			return unfollowed, fmt.Errorf("read user cells: %w", err)
		}

		for _, cell := range cells {
			if len(unfollowed) >= count {
				break
			}
			if !cell.HasButton {
				continue
			}
			sel := cellButtonSelector(cell.Mark, followingPrefix)
			err := c.act(ctx,
				chromedp.ScrollIntoView(sel, chromedp.ByQuery),
				chromedp.Click(sel, chromedp.ByQuery),
				chromedp.WaitVisible(ConfirmSheet, chromedp.ByQuery),
				chromedp.Click(ConfirmSheet, chromedp.ByQuery),
			)
			if err != nil {
				if ctx.Err() != nil {
					return unfollowed, ctx.Err()
				}
				c.logger.Warn().Err(err).Str("link", cell.Link).Msg("unfollow failed")
				continue
			}
			unfollowed = append(unfollowed, normalizeProfileURL(cell.Link))
		}

		if len(unfollowed) >= count {
			break
		}
		if err := c.eval(ctx, scrollByJS(scrollStep), nil); err != nil {
			return unfollowed, err
		}
		if err := sleep(ctx, c.scrollPause); err != nil {
			return unfollowed, err
		}
		height, err := c.scrollHeight(ctx)
		if err != nil {
			return unfollowed, err
		}
		if height == lastHeight {
			break
		}
		lastHeight = height
	}

	c.logger.Info().Int("unfollowed", len(unfollowed)).Msg("unfollow finished")
	return unfollowed, nil
}

// OpenProfile navigates to a profile and waits for the page column.
func (c *Controller) OpenProfile(ctx context.Context, link string) error {
	if err := c.navigate(ctx, link); err != nil {
		return err
	}
	if err := c.run(ctx, c.pageTimeout, chromedp.WaitVisible(PrimaryColumn, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("open profile %s: %w", link, err)
	}
	return nil
}

// WaitOutRetry checks for X's "Retry" throttle notice. When it is shown
// it waits for wait, reloads and reports true.
func (c *Controller) WaitOutRetry(ctx context.Context, wait time.Duration) (bool, error) {
	shown, err := c.check(ctx, retryShownJS())
	if err != nil || !shown {
		return false, err
	}

	c.logger.Info().Dur("wait", wait).Msg("retry notice shown, backing off")
	if err := sleep(ctx, wait); err != nil {
		return true, err
	}
	if err := c.run(ctx, c.pageTimeout,
		chromedp.Reload(),
		chromedp.WaitVisible(PrimaryColumn, chromedp.ByQuery),
	); err != nil {
		return true, fmt.Errorf("reload after retry notice: %w", err)
	}
	return true, nil
}

// LatestPost finds the newest post on the open profile that is neither an
// ad nor pinned, scrolling a few times if needed.
func (c *Controller) LatestPost(ctx context.Context) (Post, error) {
	if err := c.run(ctx, c.pageTimeout, chromedp.WaitVisible(TweetArticle, chromedp.ByQuery)); err != nil {
		if ctx.Err() != nil {
			return Post{}, ctx.Err()
		}
		return Post{}, ErrNoPost
	}

	for i := 0; i < maxPostScrolls; i++ {
		var raw rawPost
		if err := c.eval(ctx, latestPostJS(), &raw); err != nil {
			return Post{}, fmt.Errorf("find latest post: %w", err)
		}
		if raw.Found {
			return Post{
				Link:    raw.Link,
				TweetID: tweetIDFromLink(raw.Link),
				Author:  strings.TrimPrefix(raw.Author, "@"),
				Liked:   raw.Liked,
				mark:    raw.Mark,
			}, nil
		}
		if err := c.eval(ctx, scrollByJS(scrollStep), nil); err != nil {
			return Post{}, err
		}
		if err := sleep(ctx, time.Second); err != nil {
			return Post{}, err
		}
	}
	return Post{}, ErrNoPost
}

// Like likes post unless it already is. It reports whether a click was
// made.
func (c *Controller) Like(ctx context.Context, post Post) (bool, error) {
	if post.mark == "" {
		return false, errors.New("post was not located by LatestPost")
	}
	liked, err := c.check(ctx, existsJS(postSelector(post.mark, UnlikeButton)))
	if err != nil {
		return false, err
	}
	if liked {
		c.logger.Debug().Str("link", post.Link).Msg("already liked")
		return false, nil
	}

	if err := c.act(ctx, chromedp.Click(postSelector(post.mark, LikeButton), chromedp.ByQuery)); err != nil {
		return false, fmt.Errorf("like %s: %w", post.Link, err)
	}
	return true, nil
}

// Reply opens the reply dialog of post, types text and sends it.
func (c *Controller) Reply(ctx context.Context, post Post, text string) error {
	if post.mark == "" {
		return errors.New("post was not located by LatestPost")
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("empty reply text")
	}

	if err := c.act(ctx,
		chromedp.Click(postSelector(post.mark, ReplyButton), chromedp.ByQuery),
		chromedp.WaitVisible(ReplyTextarea, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("open reply to %s: %w", post.Link, err)
	}
	if err := c.act(ctx, chromedp.SendKeys(ReplyTextarea, text, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("type reply: %w", err)
	}
	if err := c.act(ctx,
		chromedp.WaitEnabled(TweetButton, chromedp.ByQuery),
		chromedp.Click(TweetButton, chromedp.ByQuery),
		chromedp.WaitNotPresent(ReplyTextarea, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}
