package session

// Dashboard routes the guard redirects between.
const (
	RouteSignIn = "/"
	RouteAdmin  = "/admin"
	RouteTeam   = "/team"
)

// View is a protected dashboard view.
type View int

const (
	ViewAdmin View = iota
	ViewTeam
)

// Decision is the guard's verdict for one request: either the view is
// allowed, or the visitor belongs at RedirectTo.
type Decision struct {
	Allow      bool
	RedirectTo string
}

/*
Decide gates a protected view:
- no identity -> sign-in entry point, whatever the view;
- admin view without the admin role -> team view;
- team view with the admin role -> admin view (admins have their own page).
The decision is recomputed for every request, so an identity that appears
or changes after the first visit takes effect on the next evaluation.
*/
func Decide(id *Identity, view View) Decision {
	if id == nil {
		return Decision{RedirectTo: RouteSignIn}
	}
	switch view {
	case ViewAdmin:
		if !id.IsAdmin() {
			return Decision{RedirectTo: RouteTeam}
		}
	case ViewTeam:
		if id.IsAdmin() {
			return Decision{RedirectTo: RouteAdmin}
		}
	}
	return Decision{Allow: true}
}

// Home returns where an identity lands after sign-in.
func Home(id *Identity) string {
	if id == nil {
		return RouteSignIn
	}
	if id.IsAdmin() {
		return RouteAdmin
	}
	return RouteTeam
}
