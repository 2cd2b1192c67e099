// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"github.com/olegiv/sitedeck/internal/i18n"
	"github.com/olegiv/sitedeck/internal/model"
)

// Admin panel paths of the navigation.
const (
	OverviewPath = "/dashboard"
	MySitePath   = "/dashboard/mysite"
)

// Navigation builds the admin menu. Overview is always present; "My site"
// appears once the site is loaded and lists one entry per existing section.
func Navigation(site *model.Site, lang string) []model.MenuItem {
	menu := []model.MenuItem{{
		Key:   "overview",
		Label: i18n.T(lang, "nav.overview"),
		Href:  OverviewPath,
	}}
	if site == nil {
		return menu
	}

	mySite := model.MenuItem{
		Key:   "mysite",
		Label: i18n.T(lang, "nav.my_site"),
		Href:  MySitePath,
	}
	for _, k := range model.Kinds {
		if !site.Has(k) {
			continue
		}
		mySite.Children = append(mySite.Children, model.MenuItem{
			Key:   string(k),
			Label: i18n.T(lang, "nav."+string(k)),
			Href:  MySitePath + "/" + string(k),
		})
	}
	return append(menu, mySite)
}
