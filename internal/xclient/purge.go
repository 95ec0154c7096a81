package xclient

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// DeleteReplies deletes the replies username has posted, newest first,
// stopping after limit deletions when limit is positive. It returns how
// many were deleted.
func (c *Controller) DeleteReplies(ctx context.Context, username string, limit int) (int, error) {
	url := "https://x.com/" + username + "/with_replies"
	n, err := c.sweep(ctx, url, ownReplyJS(username), limit, func(ctx context.Context, post rawPost) error {
		return c.act(ctx,
			chromedp.Click(postSelector(post.Mark, TweetMenu), chromedp.ByQuery),
			chromedp.WaitVisible(DeleteMenuItem, chromedp.BySearch),
			chromedp.Click(DeleteMenuItem, chromedp.BySearch),
			chromedp.WaitVisible(ConfirmSheet, chromedp.ByQuery),
			chromedp.Click(ConfirmSheet, chromedp.ByQuery),
			chromedp.WaitNotPresent(markSelector(post.Mark), chromedp.ByQuery),
		)
	})
	c.logger.Info().Int("deleted", n).Msg("reply deletion finished")
	return n, err
}

// Unlike removes username's likes, stopping after limit when limit is
// positive. It returns how many posts were unliked.
func (c *Controller) Unlike(ctx context.Context, username string, limit int) (int, error) {
	url := "https://x.com/" + username + "/likes"
	n, err := c.sweep(ctx, url, likedPostJS(), limit, func(ctx context.Context, post rawPost) error {
		return c.act(ctx, chromedp.Click(postSelector(post.Mark, UnlikeButton), chromedp.ByQuery))
	})
	c.logger.Info().Int("unliked", n).Msg("unlike finished")
	return n, err
}

// sweep opens url and applies do to every post find stamps, scrolling
// when none is rendered, until the page stops growing or limit is met.
// A post whose action fails keeps its mark and is not retried.
func (c *Controller) sweep(ctx context.Context, url, find string, limit int, do func(context.Context, rawPost) error) (int, error) {
	if err := c.navigate(ctx, url); err != nil {
		return 0, err
	}
	if err := c.run(ctx, c.pageTimeout, chromedp.WaitVisible(PrimaryColumn, chromedp.ByQuery)); err != nil {
		return 0, fmt.Errorf("open %s: %w", url, err)
	}

	done := 0
	lastHeight, err := c.scrollHeight(ctx)
	if err != nil {
		return 0, err
	}
	for limit <= 0 || done < limit {
		var post rawPost
		if err := c.eval(ctx, find, &post); err != nil {
			return done, fmt.Errorf("find post: %w", err)
		}
		if post.Found {
			if err := do(ctx, post); err != nil {
				if ctx.Err() != nil {
					return done, ctx.Err()
				}
				c.logger.Warn().Err(err).Str("link", post.Link).Msg("post action failed, skipping")
				continue
			}
			done++
			continue
		}

		if err := c.eval(ctx, scrollPageJS, nil); err != nil {
			return done, err
		}
		if err := sleep(ctx, c.scrollPause); err != nil {
			return done, err
		}
		height, err := c.scrollHeight(ctx)
		if err != nil {
			return done, err
		}
		if height == lastHeight {
			break
		}
		lastHeight = height
	}
	return done, nil
}
