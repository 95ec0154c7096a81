package xclient

// X.com DOM selectors.
// These are isolated here because X changes their DOM frequently.
// Update these when automation breaks.

const (
	// Navigation and layout
	PrimaryColumn = `[data-testid="primaryColumn"]`
	HomeTimeline  = `div[aria-label="Home timeline"]`
	AccountMenu   = `button[data-testid="SideNav_AccountSwitcher_Button"]`
	LogoutLink    = `a[href="/logout"]`
	ConfirmSheet  = `button[data-testid="confirmationSheetConfirm"]`
	LoginButton   = `a[data-testid="loginButton"]`
	BackButton    = `button[data-testid="app-bar-back"]`

	// Sign-in flow
	UsernameInput  = `input[autocomplete="username"]`
	ChallengeInput = `input[data-testid="ocfEnterTextTextInput"]`
	PasswordInput  = `input[name="password"]`

	// Profiles
	ProfileUserName    = `div[data-testid="UserName"]`
	ProfileDescription = `div[data-testid="UserDescription"]`
	ProfileLocation    = `span[data-testid="UserLocation"]`
	ProfileURL         = `a[data-testid="UserUrl"]`
	ProfileJoinDate    = `span[data-testid="UserJoinDate"]`
	FollowingTimeline  = `div[aria-label="Timeline: Following"]`
	UserCell           = `button[data-testid="UserCell"]`

	// Tweets
	TweetArticle  = `article[data-testid="tweet"]`
	TweetLink     = `a[href*="/status/"]`
	TweetAuthor   = `[data-testid="User-Name"]`
	LikeButton    = `button[data-testid="like"]`
	UnlikeButton  = `button[data-testid="unlike"]`
	ReplyButton   = `button[data-testid="reply"]`
	ReplyTextarea = `div[data-testid="tweetTextarea_0"]`
	TweetButton   = `button[data-testid="tweetButton"]`
	TweetMenu     = `button[data-testid="caret"]`

	// Tweet menu entries are matched by text, so they are XPath.
	DeleteMenuItem = `//div[@role="menuitem"][.//span[text()="Delete"]]`

	// Notices
	Toast = `div[data-testid="toast"]`
)

// Visible texts matched inside the elements above.
const (
	textFollowLimit    = "unable to follow more people"
	textRetry          = "Retry"
	textAd             = "Ad"
	textPinned         = "Pinned"
	textVerification   = "verification"
	textEmailChallenge = "phone number or email"
	textAccountLocked  = "Your account has been locked"
	textNotFound       = "This account doesn’t exist"
	textReplyingTo     = "Replying to"
)

// Attribute the controller stamps on elements it picks through script so
// chromedp can click them by query.
const markAttr = "data-xbot-mark"
