package affiliation

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	CorporateGroup = "corporate"
	NextcloudGroup = "nextcloud"
)

var ErrUnknownGroup = errors.New("unknown affiliation group")

// Email domains of companies that employ open source developers.
var CorporateDomains = []string{
	"canonical.com", "collabora.com", "collabora.co.uk", "codethink.com",
	"endlessos.org", "intel.com", "openismus.com", "redhat.com", "ximian.com",
	"nvidia.com", "amd.com", "ubisoft.com", "microsoft.com", "apple.com",
	"huawei.com", "xilinx.com", "suse.de", "ibm.com", "linaro.org",
	"redhat.de", "codeweavers.com", "facebook.com", "netflix.com",
	"google.com", "xiaomi.com", "adobe.com", "docker.com", "oracle.com",
	"samsung.com", "suse.com", "qt.com", "qt.io", "qt-project.org", "ovi.com",
	"trolltech.com", "nokia.com", "mozilla.com", "nextcloud.com",
	"ubuntu.com", "suse.cz", "novell.com", "epicgames.com",
	"valvesoftware.com", "tensorflow.org", "swift-ci", "fb.com",
	"twitter.com", "alibaba.com", "ge.com", "netscape.com", "ti.com",
	"citrix.com", "wolfsonmicro.com", "cisco.com", "fujitsu.com",
	"broadcom.com", "sgi.com", "hp.com", "atmel.com", "atheros.com",
	"nex.com", "coraid.com", "sun.com", "sony.co", "sony.com", "ntt.co",
	"ntt.com", "adaptec.com", "emulex.com", "analog.com", "vertias.com",
	"freescale.com", "qlogic.com", "toshiba.co", "toshiba.com", "arm.com",
	"marvell.com", "taobao.com", "micron.com", "hynix.com", "virtuozzo.com",
	"nxp.com", "linutronix.de", "free-electrons.com", "microsemi.com",
	"sang-engineering.com", "trendmicro.com", "rock-chips.com",
	"yandex-tem.ru", "altera.com", "alterra.com", "windriver.com",
	"synaptics.com", "codeaurora.org", "baylibre.com", "s-opensource.com",
	"savoirfairelinux.com", "mediatek.com", "lge.com", "lg.com",
	"renesas.com", "unisys.com", "qualcomm.com", "primarydata.com",
	"igalia.com", "aoyama.ac.jp", "unity.com", "shopify.com", "hulu.com",
	"rebertia.com", "kitware.com", "spotify.com", "wyeworks.com",
	"voormedia.com", "dio.jp", "zendesk.com", "slack-corp.com",
	"bqvision.com", "Obsidian.Systems",
}

// Domains, addresses and handles of people known to work on Nextcloud for
// Nextcloud GmbH or ownCloud.
var NextcloudEmployees = []string{
	"nextcloud.com", "arthur-schiwon", "jus@bitgrid.net", "icewind.nl",
	"php.rio", "carlschwan.eu", "chrng8", "schilljs.com", "lchmn.me",
	"eneiluj", "vanpertsch", "artonge", "dependabot", "morrisjobke.de",
	"famdouma.nl", "winzerhof-wurst.at", "georgehrke.com", "rullzer",
	"danxuliu", "artificial-owl.com", "jancborchardt.net", "schiessle.org",
	"thomas.mueller", "owncloud.com", "owncloud-bot", "oparoz",
	"georgswebsite.de", "frank", "robin", "icewind1991", "karlitschek",
	"statuscode.ch",
}

// Named lists of patterns that identify an affiliation.
type Groups map[string][]string

func DefaultGroups() Groups {
	return Groups{
		CorporateGroup: slices.Clone(CorporateDomains),
		NextcloudGroup: slices.Clone(NextcloudEmployees),
	}
}

func (g Groups) Lookup(name string) ([]string, error) {
	patterns, ok := g[name]
	if !ok {
		return nil, fmt.Errorf("%w: \"%s\"", ErrUnknownGroup, name)
	}

	return patterns, nil
}

// Names of all groups, sorted.
func (g Groups) Names() []string {
	return slices.Sorted(maps.Keys(g))
}

// Returns a new set of groups where groups in other replace groups of the
// same name.
func (g Groups) Merge(other Groups) Groups {
	merged := maps.Clone(g)
	if merged == nil {
		merged = Groups{}
	}

	maps.Copy(merged, other)
	return merged
}

// LoadGroups reads groups from a YAML (or JSON) file mapping each group name
// to its list of patterns.
func LoadGroups(path string) (_ Groups, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("could not load groups from %s: %w", path, err)
		}
	}()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var groups Groups
	err = yaml.Unmarshal(b, &groups)
	if err != nil {
		return nil, err
	}

	for name, patterns := range groups {
		if len(patterns) == 0 {
			return nil, fmt.Errorf("group \"%s\" has no patterns", name)
		}
	}

	logger().Debug("loaded groups", "path", path, "groups", groups.Names())
	return groups, nil
}
