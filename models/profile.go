package models

// DisplayProfileKind tags which side of the profile union a view came from.
type DisplayProfileKind string

const (
	KindCurrentUser DisplayProfileKind = "current_user"
	KindHost        DisplayProfileKind = "host"
)

// DisplayProfile is the common read-only shape rendered for either the
// current user or a host, so consumers never branch on who they are showing.
type DisplayProfile struct {
	Kind         DisplayProfileKind `json:"kind"`
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	About        string             `json:"about"`
	Services     []string           `json:"services"`
	Lat          float64            `json:"lat"`
	Lng          float64            `json:"lng"`
	Hiking       bool               `json:"hiking"`
	ResponseRate int                `json:"response_rate"`
	LastActivity string             `json:"last_activity"`
	Twitter      string             `json:"twitter,omitempty"`
	Instagram    string             `json:"instagram,omitempty"`
}

// DisplayFromAngel maps a directory entry into the common view shape.
func DisplayFromAngel(a TrailAngel) DisplayProfile {
	return DisplayProfile{
		Kind:         KindHost,
		ID:           a.ID,
		Name:         a.Name,
		About:        a.About,
		Services:     a.ServiceIDs(),
		Lat:          a.Lat,
		Lng:          a.Lng,
		Hiking:       a.Hiking,
		ResponseRate: a.ResponseRate,
		LastActivity: a.LastActivity,
		Twitter:      a.Twitter,
		Instagram:    a.Instagram,
	}
}

// DisplayFromProfile maps the current user's own record into the same shape.
func DisplayFromProfile(handle string, p UserProfile) DisplayProfile {
	return DisplayProfile{
		Kind:         KindCurrentUser,
		ID:           handle,
		Name:         p.TrailName,
		About:        p.About,
		Services:     SplitServices(p.Services),
		Lat:          p.Lat,
		Lng:          p.Lng,
		Hiking:       p.Hiking,
		ResponseRate: p.ResponseRate,
		LastActivity: p.LastActivity,
		Twitter:      p.Twitter,
		Instagram:    p.Instagram,
	}
}
