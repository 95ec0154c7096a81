package xclient

import (
	"fmt"
	"strconv"
)

// js quotes s as a JavaScript string literal.
func js(s string) string {
	return strconv.Quote(s)
}

// Login steps reported by loginStepJS.
const (
	stepHome         = "home"
	stepPassword     = "password"
	stepEmail        = "email"
	stepVerification = "verification"
	stepNone         = ""
)

func loginStepJS() string {
	return fmt.Sprintf(`(() => {
		if (document.querySelector(%s)) return %s;
		if (document.querySelector(%s)) return %s;
		const text = document.body ? document.body.innerText : "";
		if (document.querySelector(%s)) {
			return text.includes(%s) ? %s : %s;
		}
		if (text.toLowerCase().includes(%s)) return %s;
		return "";
	})()`,
		js(HomeTimeline), js(stepHome),
		js(PasswordInput), js(stepPassword),
		js(ChallengeInput),
		js(textEmailChallenge), js(stepEmail), js(stepVerification),
		js(textVerification), js(stepVerification),
	)
}

// accountHandleJS returns the @handle shown in the side navigation.
func accountHandleJS() string {
	return fmt.Sprintf(`(() => {
		const menu = document.querySelector(%s);
		if (!menu) return "";
		const span = Array.from(menu.querySelectorAll("span")).find(s => s.textContent.startsWith("@"));
		return span ? span.textContent.trim() : "";
	})()`, js(AccountMenu))
}

func bodyContainsJS(text string) string {
	return fmt.Sprintf(`(document.body ? document.body.innerText : "").includes(%s)`, js(text))
}

func elementTextJS(selector, text string) string {
	return fmt.Sprintf(`Array.from(document.querySelectorAll(%s)).some(e => e.textContent.includes(%s))`,
		js(selector), js(text))
}

func existsJS(selector string) string {
	return fmt.Sprintf(`document.querySelector(%s) !== null`, js(selector))
}

// retryShownJS detects the "Retry" button X shows when it throttles
// timeline loads.
func retryShownJS() string {
	return fmt.Sprintf(`Array.from(document.querySelectorAll(%s + " span")).some(s => s.textContent.trim() === %s)`,
		js(PrimaryColumn), js(textRetry))
}

const scrollHeightJS = `document.body ? document.body.scrollHeight : 0`

func scrollByJS(px int) string {
	return fmt.Sprintf(`window.scrollBy(0, %d); true`, px)
}

const scrollPageJS = `window.scrollBy(0, window.innerHeight); true`

// userNameJS returns the display name on a profile page.
func userNameJS() string {
	return fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) return "";
		const span = el.querySelector("span");
		return span ? span.textContent.trim() : "";
	})()`, js(ProfileUserName))
}

func followingCountJS(username string) string {
	return fmt.Sprintf(`(() => {
		const a = document.querySelector('a[href="/' + %s + '/following"]');
		if (!a) return "";
		const span = a.querySelector("span");
		return span ? span.textContent.trim() : "";
	})()`, js(username))
}

// rawProfile is what profileJS returns.
type rawProfile struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	Website   string `json:"website"`
	Joined    string `json:"joined"`
	Following string `json:"following"`
	Followers string `json:"followers"`
}

func profileJS() string {
	return fmt.Sprintf(`(() => {
		const text = sel => {
			const el = document.querySelector(sel);
			return el ? el.textContent.trim() : "";
		};
		const count = suffix => {
			const a = Array.from(document.querySelectorAll("a")).find(a => (a.getAttribute("href") || "").endsWith(suffix));
			if (!a) return "";
			const span = a.querySelector("span");
			return span ? span.textContent.trim() : "";
		};
		const nameEl = document.querySelector(%s);
		const nameSpan = nameEl ? nameEl.querySelector("span") : null;
		const url = document.querySelector(%s);
		return {
			name: nameSpan ? nameSpan.textContent.trim() : "",
			bio: text(%s),
			location: text(%s),
			website: url ? (url.getAttribute("href") || "") : "",
			joined: text(%s),
			following: count("/following"),
			followers: count("/verified_followers") || count("/followers"),
		};
	})()`,
		js(ProfileUserName), js(ProfileURL),
		js(ProfileDescription), js(ProfileLocation), js(ProfileJoinDate),
	)
}

// followingLinksJS lists the profile links currently rendered in the
// following timeline.
func followingLinksJS() string {
	return fmt.Sprintf(`(() => {
		const timeline = document.querySelector(%s);
		if (!timeline) return [];
		return Array.from(timeline.querySelectorAll(%s))
			.map(cell => cell.querySelector('a[role="link"]'))
			.filter(a => a)
			.map(a => a.href);
	})()`, js(FollowingTimeline), js(UserCell))
}

// rawCell is one user cell stamped by cellsJS.
type rawCell struct {
	Mark      string `json:"mark"`
	Link      string `json:"link"`
	Bio       string `json:"bio"`
	HasButton bool   `json:"hasButton"`
}

// cellsJS stamps every unmarked user cell under root with a unique mark
// and returns it. button is the aria-label prefix of the action button
// the caller wants to press ("Follow " or "Following ").
func cellsJS(root, button string) string {
	return fmt.Sprintf(`(() => {
		const root = %s ? document.querySelector(%s) : document;
		if (!root) return [];
		window.__xbotMark = window.__xbotMark || 0;
		const out = [];
		root.querySelectorAll(%s).forEach(cell => {
			if (cell.hasAttribute(%s)) return;
			const a = cell.querySelector('a[role="link"]');
			if (!a) return;
			const mark = "c" + (++window.__xbotMark);
			cell.setAttribute(%s, mark);
			const autos = cell.querySelectorAll('div[dir="auto"]');
			const bio = autos.length > 1 ? autos[autos.length - 1].textContent : "";
			const btn = cell.querySelector('button[aria-label^=' + JSON.stringify(%s) + ']');
			out.push({mark, link: a.href, bio, hasButton: btn !== null});
		});
		return out;
	})()`,
		js(root), js(root), js(UserCell), js(markAttr), js(markAttr), js(button),
	)
}

// cellButtonSelector addresses the action button inside a stamped cell.
func cellButtonSelector(mark, button string) string {
	return fmt.Sprintf(`[%s=%q] button[aria-label^=%q]`, markAttr, mark, button)
}

// rawPost is what latestPostJS returns.
type rawPost struct {
	Found  bool   `json:"found"`
	Mark   string `json:"mark"`
	Link   string `json:"link"`
	Author string `json:"author"`
	Liked  bool   `json:"liked"`
}

// latestPostJS stamps the first rendered tweet that is neither an ad nor
// pinned.
func latestPostJS() string {
	return fmt.Sprintf(`(() => {
		window.__xbotMark = window.__xbotMark || 0;
		for (const article of document.querySelectorAll(%s)) {
			const isAd = Array.from(article.querySelectorAll("span")).some(s => s.textContent.trim() === %s);
			const pinned = Array.from(article.querySelectorAll("div")).some(d => d.textContent.trim() === %s);
			if (isAd || pinned) continue;
			const link = article.querySelector(%s);
			if (!link) continue;
			let mark = article.getAttribute(%s);
			if (!mark) {
				mark = "p" + (++window.__xbotMark);
				article.setAttribute(%s, mark);
			}
			const authorEl = article.querySelector(%s);
			const handle = authorEl ? Array.from(authorEl.querySelectorAll("span")).find(s => s.textContent.startsWith("@")) : null;
			article.scrollIntoView({block: "center"});
			return {
				found: true,
				mark,
				link: link.href,
				author: handle ? handle.textContent.trim() : "",
				liked: article.querySelector(%s) !== null,
			};
		}
		return {found: false};
	})()`,
		js(TweetArticle), js(textAd), js(textPinned), js(TweetLink),
		js(markAttr), js(markAttr), js(TweetAuthor), js(UnlikeButton),
	)
}

// markSelector addresses a stamped element.
func markSelector(mark string) string {
	return fmt.Sprintf(`[%s=%q]`, markAttr, mark)
}

// postSelector addresses an element inside a stamped tweet.
func postSelector(mark, inner string) string {
	return fmt.Sprintf(`[%s=%q] %s`, markAttr, mark, inner)
}

// ownReplyJS stamps the first unmarked reply written by @username on the
// page. Posts that are not replies are left alone.
func ownReplyJS(username string) string {
	return fmt.Sprintf(`(() => {
		const handle = "@" + %s.toLowerCase();
		window.__xbotMark = window.__xbotMark || 0;
		for (const article of document.querySelectorAll(%s)) {
			if (article.hasAttribute(%s)) continue;
			const authorEl = article.querySelector(%s);
			const span = authorEl ? Array.from(authorEl.querySelectorAll("span")).find(s => s.textContent.startsWith("@")) : null;
			if (!span || span.textContent.trim().toLowerCase() !== handle) continue;
			if (!article.innerText.includes(%s)) continue;
			const link = article.querySelector(%s);
			const mark = "r" + (++window.__xbotMark);
			article.setAttribute(%s, mark);
			article.scrollIntoView({block: "center"});
			return {found: true, mark, link: link ? link.href : "", author: span.textContent.trim()};
		}
		return {found: false};
	})()`,
		js(username), js(TweetArticle), js(markAttr), js(TweetAuthor),
		js(textReplyingTo), js(TweetLink), js(markAttr),
	)
}

// likedPostJS stamps the first unmarked post on the page that shows an
// unlike button.
func likedPostJS() string {
	return fmt.Sprintf(`(() => {
		window.__xbotMark = window.__xbotMark || 0;
		for (const article of document.querySelectorAll(%s)) {
			if (article.hasAttribute(%s)) continue;
			if (!article.querySelector(%s)) continue;
			const link = article.querySelector(%s);
			const mark = "l" + (++window.__xbotMark);
			article.setAttribute(%s, mark);
			article.scrollIntoView({block: "center"});
			return {found: true, mark, link: link ? link.href : "", liked: true};
		}
		return {found: false};
	})()`,
		js(TweetArticle), js(markAttr), js(UnlikeButton), js(TweetLink), js(markAttr),
	)
}
