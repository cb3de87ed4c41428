package server

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/apperr"
	"github.com/smokyabdulrahman/salat/internal/cache"
	"github.com/smokyabdulrahman/salat/internal/events"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/hijri"
	"github.com/smokyabdulrahman/salat/internal/locale"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/smokyabdulrahman/salat/internal/schedule"
	"github.com/smokyabdulrahman/salat/internal/validate"
)

// langOf picks the response language from ?lang= or Accept-Language.
func langOf(c *fiber.Ctx) locale.Lang {
	if q := c.Query("lang"); q != "" {
		return locale.Parse(q)
	}
	return locale.Parse(c.Get(fiber.HeaderAcceptLanguage))
}

func queryFloat(c *fiber.Ctx, name string) (*float64, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, apperr.Invalid(name, s, "must be a number")
	}
	return &f, nil
}

func queryInt(c *fiber.Ctx, name string, def int) (int, error) {
	s := c.Query(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.Invalid(name, s, "must be an integer")
	}
	return n, nil
}

// queryDate parses ?name=YYYY-MM-DD, or returns today in loc.
func (s *Server) queryDate(c *fiber.Ctx, name string, loc *time.Location) (time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return s.now().In(loc), nil
	}
	d, err := time.ParseInLocation(api.DateLayout, v, loc)
	if err != nil {
		return time.Time{}, apperr.Invalid(name, v, "must be a date like 2006-01-02")
	}
	return d, nil
}

func converterOf(c *fiber.Ctx) (hijri.Converter, error) {
	adj, err := queryInt(c, "hijri_adjust", 0)
	if err != nil {
		return hijri.Converter{}, err
	}
	conv := hijri.Converter{Adjust: adj}
	return conv, conv.Validate()
}

// resolve turns the location and method parameters into a schedule request.
func (s *Server) resolve(c *fiber.Ctx) (*schedule.Request, error) {
	lat, err := queryFloat(c, "lat")
	if err != nil {
		return nil, err
	}
	lon, err := queryFloat(c, "lon")
	if err != nil {
		return nil, err
	}
	elev, err := queryFloat(c, "elevation")
	if err != nil {
		return nil, err
	}
	adj, err := queryInt(c, "hijri_adjust", 0)
	if err != nil {
		return nil, err
	}

	opts := schedule.Options{
		Place:       c.Query("place"),
		Latitude:    lat,
		Longitude:   lon,
		Timezone:    c.Query("tz"),
		Method:      c.Query("method", s.config.DefaultMethod),
		Asr:         c.Query("asr"),
		HighLat:     c.Query("high_lat"),
		HijriAdjust: adj,
	}
	if elev != nil {
		opts.Elevation = *elev
	}
	return schedule.Resolve(opts)
}

func timesResponse(req *schedule.Request, day schedule.Day, lang locale.Lang) api.TimesResponse {
	loc := api.LocationInfo{
		Latitude:  req.Coordinate.Latitude,
		Longitude: req.Coordinate.Longitude,
		Elevation: req.Coordinate.Elevation,
		Timezone:  req.ZoneName(),
	}
	if req.Place != nil {
		loc.Place = req.Place.ID
	}
	return api.TimesResponse{
		Date:     day.Date.Format(api.DateLayout),
		Weekday:  day.Date.Weekday().String(),
		Hijri:    api.NewHijriDate(day.Hijri, lang),
		Location: loc,
		Method:   api.NewMethodInfo(req.Method),
		Timings:  api.NewTimings(day.Times),
		Fallback: day.Times.Fallback,
	}
}

func (s *Server) health(c *fiber.Ctx) error {
	resp := api.HealthResponse{
		Status: "healthy",
		Cache:  "memory",
		Time:   s.now().UTC().Format(time.RFC3339),
	}
	switch st := s.store.(type) {
	case *cache.RedisStore:
		resp.Cache = "redis"
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := st.Health(ctx); err != nil {
			s.logger.Warn("Redis health check failed", zap.Error(err))
			resp.Status = "degraded"
			c.Status(fiber.StatusServiceUnavailable)
		}
	case *cache.FileStore:
		resp.Cache = "file"
	}
	return sendSuccess(c, resp)
}

// GET /times?place=|lat=&lon= [&date=&tz=&method=&asr=&high_lat=&elevation=&hijri_adjust=]
func (s *Server) times(c *fiber.Ctx) error {
	req, err := s.resolve(c)
	if err != nil {
		return err
	}
	date, err := s.queryDate(c, "date", req.Location)
	if err != nil {
		return err
	}
	day, err := req.Day(date)
	if err != nil {
		return err
	}
	return sendSuccess(c, timesResponse(req, day, langOf(c)))
}

type rangeQuery struct {
	Days int `query:"days" validate:"gte=1,lte=31"`
}

// GET /times/range?days=N plus the /times parameters.
func (s *Server) timesRange(c *fiber.Ctx) error {
	var q rangeQuery
	var err error
	if q.Days, err = queryInt(c, "days", 7); err != nil {
		return err
	}
	if err := validate.Struct(q); err != nil {
		return err
	}

	req, err := s.resolve(c)
	if err != nil {
		return err
	}
	from, err := s.queryDate(c, "date", req.Location)
	if err != nil {
		return err
	}
	days, err := req.Range(from, q.Days)
	if err != nil {
		return err
	}

	lang := langOf(c)
	out := make([]api.TimesResponse, len(days))
	for i, d := range days {
		out[i] = timesResponse(req, d, lang)
	}
	return sendSuccess(c, out)
}

// GET /next?prayers=Fajr,Isha plus the /times location parameters.
func (s *Server) next(c *fiber.Ctx) error {
	selected := prayer.DefaultPrayerNames
	if p := c.Query("prayers"); p != "" {
		names, err := prayer.ParseNames(p)
		if err != nil {
			return err
		}
		selected = names
	}

	req, err := s.resolve(c)
	if err != nil {
		return err
	}
	mo, err := req.At(s.now(), selected)
	if err != nil {
		return err
	}
	if mo.Next == nil {
		return apperr.ErrNotFound.WithDetails(map[string]any{"next": "no upcoming prayer"})
	}

	style := prayer.Style{Lang: langOf(c)}
	d := prayer.TimeRemaining(*mo.Next, mo.Now)
	resp := api.NextResponse{
		Next:      mo.Next.Name,
		NextName:  style.Name(mo.Next.Name),
		Time:      style.Time(mo.Next.Time),
		At:        mo.Next.Time.Format(time.RFC3339),
		Remaining: style.Remaining(d),
		Minutes:   int(d.Minutes()),
		Timezone:  req.ZoneName(),
	}
	if mo.Current != nil {
		resp.Current = mo.Current.Name
	}
	return sendSuccess(c, resp)
}

// GET /calendar/hijri?date=YYYY-MM-DD
func (s *Server) toHijri(c *fiber.Ctx) error {
	conv, err := converterOf(c)
	if err != nil {
		return err
	}
	date, err := s.queryDate(c, "date", time.UTC)
	if err != nil {
		return err
	}
	h, err := conv.ToHijri(date)
	if err != nil {
		return err
	}
	return sendSuccess(c, api.NewCalendarResponse(date, h, langOf(c)))
}

type gregorianQuery struct {
	Year  int `query:"year" validate:"required"`
	Month int `query:"month" validate:"required,gte=1,lte=12"`
	Day   int `query:"day" validate:"required,gte=1,lte=30"`
}

// GET /calendar/gregorian?year=&month=&day=
func (s *Server) toGregorian(c *fiber.Ctx) error {
	var q gregorianQuery
	var err error
	if q.Year, err = queryInt(c, "year", 0); err != nil {
		return err
	}
	if q.Month, err = queryInt(c, "month", 0); err != nil {
		return err
	}
	if q.Day, err = queryInt(c, "day", 0); err != nil {
		return err
	}
	if err := validate.Struct(q); err != nil {
		return err
	}

	conv, err := converterOf(c)
	if err != nil {
		return err
	}
	h := hijri.Date{Year: q.Year, Month: q.Month, Day: q.Day}
	g, err := conv.ToGregorian(h)
	if err != nil {
		return err
	}
	return sendSuccess(c, api.NewCalendarResponse(g, h, langOf(c)))
}

type upcomingQuery struct {
	N int `query:"n" validate:"gte=0,lte=100"`
}

// GET /events/upcoming?n=&date=&category=
func (s *Server) upcoming(c *fiber.Ctx) error {
	var q upcomingQuery
	var err error
	if q.N, err = queryInt(c, "n", 5); err != nil {
		return err
	}
	if err := validate.Struct(q); err != nil {
		return err
	}

	conv, err := converterOf(c)
	if err != nil {
		return err
	}
	from, err := s.queryDate(c, "date", time.UTC)
	if err != nil {
		return err
	}
	var occ []events.Occurrence
	if cat := c.Query("category"); cat != "" {
		category, err := events.ParseCategory(cat)
		if err != nil {
			return err
		}
		if occ, err = events.Upcoming(conv, from, 0); err != nil {
			return err
		}
		occ = events.OfCategory(occ, category)
		if q.N > 0 && q.N < len(occ) {
			occ = occ[:q.N]
		}
	} else if occ, err = events.Upcoming(conv, from, q.N); err != nil {
		return err
	}

	lang := langOf(c)
	resp := api.UpcomingResponse{
		From:   from.Format(api.DateLayout),
		Events: make([]api.EventResponse, len(occ)),
	}
	for i, o := range occ {
		resp.Events[i] = api.NewEventResponse(o, lang)
	}
	return sendSuccess(c, resp)
}

// GET /methods
func (s *Server) methods(c *fiber.Ctx) error {
	ms := prayer.Methods()
	out := make([]api.MethodInfo, len(ms))
	for i, m := range ms {
		out[i] = api.NewMethodInfo(m)
	}
	return sendSuccess(c, out)
}

// GET /places?kind=division|district
func (s *Server) places(c *fiber.Ctx) error {
	var ps []geo.Place
	switch kind := c.Query("kind"); kind {
	case "":
		ps = geo.Places()
	case string(geo.KindDivision), string(geo.KindDistrict):
		ps = geo.PlacesOfKind(geo.Kind(kind))
	default:
		return apperr.Invalid("kind", kind, "must be division or district")
	}

	out := make([]api.PlaceResponse, len(ps))
	for i, p := range ps {
		out[i] = api.NewPlaceResponse(p)
	}
	return sendSuccess(c, out)
}

// GET /places/:id
func (s *Server) place(c *fiber.Ctx) error {
	p, err := geo.LookupPlace(c.Params("id"))
	if err != nil {
		return err
	}
	return sendSuccess(c, api.NewPlaceResponse(p))
}

// GET /locate[?ip=]
func (s *Server) locate(c *fiber.Ctx) error {
	ip := strings.TrimSpace(c.Query("ip"))
	if ip == "" {
		ip = c.IP()
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return apperr.Invalid("ip", ip, "must be an IP address")
	}
	// A private caller shares the server's public address.
	if parsed.IsLoopback() || parsed.IsPrivate() {
		ip = ""
	}

	loc, cached, err := s.geo.Locate(c.UserContext(), ip, s.detect)
	if err != nil {
		s.logger.Warn("IP geolocation failed", zap.String("ip", ip), zap.Error(err))
		return apperr.ErrUpstream.WithDetails(map[string]any{"reason": err.Error()})
	}
	return sendSuccess(c, api.LocateResponse{Location: *loc, Cached: cached})
}
