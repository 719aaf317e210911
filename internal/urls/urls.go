package urls

// Reference URLs shown in CLI hints and troubleshooting boxes

// Project is the source repository, shown in the watch screen header.
const Project = "github.com/muurk/wot-discovery"

// WoTDiscovery is the W3C Web of Things Discovery recommendation,
// which defines the _wot._tcp DNS-SD service type and its TXT keys.
const WoTDiscovery = "https://www.w3.org/TR/wot-discovery/"

// DNSSDIntroduction is the DNS-SD introduction mechanism section,
// covering the "td", "type" and "scheme" TXT record keys.
const DNSSDIntroduction = "https://www.w3.org/TR/wot-discovery/#introduction-dns-sd-sec"

// ThingDescription is the W3C Thing Description 1.1 recommendation,
// the document format fetched from every discovered Thing.
const ThingDescription = "https://www.w3.org/TR/wot-thing-description11/"
